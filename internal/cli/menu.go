package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"pentu/internal/app"
	"pentu/internal/runner"
	"pentu/internal/scans"
	"pentu/internal/system"
	"pentu/internal/ui"
)

// runMenu shows the main menu until the user exits or presses Ctrl+C there.
func runMenu(ctx context.Context) error {
	out := os.Stdout
	a := app.New(conf, out)
	printBanner(out)
	for {
		if ctx.Err() != nil {
			return nil
		}
		choice, err := ui.MainMenu()
		if errors.Is(err, huh.ErrUserAborted) || choice == ui.ChoiceExit {
			ui.Info(out, "Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
		if err := menuAction(ctx, a, choice); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			ui.Fail(out, "%v", err)
			system.Logger.Debug("menu action failed", "choice", choice, "err", err)
		}
		if choice != ui.ChoiceBrowse {
			ui.Pause(out, os.Stdin)
		}
	}
}

func menuAction(ctx context.Context, a *app.App, choice ui.MenuChoice) error {
	var (
		plan scans.Plan
		err  error
	)
	switch choice {
	case ui.ChoiceNmap:
		target, scanType, ferr := ui.NmapForm()
		if ferr != nil {
			return ferr
		}
		plan, err = a.Catalog.Nmap(target, scanType)
	case ui.ChoiceWeb:
		target, tool, ferr := ui.WebForm()
		if ferr != nil {
			return ferr
		}
		plan, err = a.Catalog.Web(target, tool)
	case ui.ChoiceVuln:
		target, ferr := ui.PromptTarget("Target URL/IP")
		if ferr != nil {
			return ferr
		}
		plan, err = a.Catalog.Vuln(target)
	case ui.ChoiceOSINT:
		domain, ferr := ui.PromptTarget("Target domain")
		if ferr != nil {
			return ferr
		}
		plan, err = a.Catalog.OSINT(domain)
	case ui.ChoiceSQLi:
		target, ferr := ui.PromptTarget("Target URL (with parameter)")
		if ferr != nil {
			return ferr
		}
		plan, err = a.Catalog.SQLi(target)
	case ui.ChoiceBrute:
		in, ferr := ui.BruteForm()
		if ferr != nil {
			return ferr
		}
		plan, err = a.Catalog.Brute(in.Target, in.Service, in.Users, in.Passwords)
	case ui.ChoiceWireless:
		iface, ok, ferr := ui.WirelessForm()
		if ferr != nil || !ok {
			return ferr
		}
		plan, err = a.Catalog.Wireless(iface)
	case ui.ChoiceTools:
		return printTools(a.Out, "text")
	case ui.ChoiceResults:
		return viewResults(a)
	case ui.ChoiceBrowse:
		return a.Browse(ctx)
	case ui.ChoiceCustom:
		return customCommand(ctx, a)
	default:
		return fmt.Errorf("unknown menu choice %q", choice)
	}
	if err != nil {
		return err
	}
	// failures were already printed step by step
	_ = a.RunPlan(ctx, plan)
	return nil
}

func viewResults(a *app.App) error {
	list, err := a.Store.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ui.Warn(a.Out, "No results found")
		return nil
	}
	newestFirst(list)
	rf, ok, err := ui.PickReport(list)
	if err != nil || !ok {
		return err
	}
	content, err := a.Store.Read(rf)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, ui.Frame(content, termWidth()))
	return nil
}

func customCommand(ctx context.Context, a *app.App) error {
	command, err := ui.CommandForm()
	if err != nil {
		return err
	}
	so := a.Session.Custom(ctx, command, a.Config.DefaultTimeout(), func(runner.Result) bool {
		ok, _ := ui.Confirm("Save output to file?")
		return ok
	})
	return so.SaveErr
}
