package cli

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Goto navigates to the path in args[0]. Guards may send the user elsewhere;
// the surface actually reached is printed.
func (a *App) Goto(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: goto <path>")
		return nil
	}

	target := args[0]
	if err := a.router.Navigate(ctx, target); err != nil {
		a.report(err)
		return err
	}

	loc := a.router.Current()
	if loc.Path != path.Clean("/"+strings.TrimPrefix(target, "/")) {
		a.println(fmt.Sprintf("Redirected to %s (%s)", loc.Path, loc.Name))
		return nil
	}
	a.println(fmt.Sprintf("Now at %s (%s)", loc.Path, loc.Name))
	return nil
}

func (a *App) Where(ctx context.Context) error {
	loc := a.router.Current()
	if loc.Path == "" {
		a.println("Nowhere yet.")
		return nil
	}

	line := fmt.Sprintf("%s (%s)", loc.Path, loc.Name)
	if len(loc.Params) > 0 {
		keys := make([]string, 0, len(loc.Params))
		for k := range loc.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+"="+loc.Params[k])
		}
		line += " " + strings.Join(pairs, " ")
	}
	a.println(line)
	return nil
}

// enter navigates to path and reports whether the guards let the user in.
func (a *App) enter(ctx context.Context, p string) (bool, error) {
	if err := a.router.Navigate(ctx, p); err != nil {
		return false, err
	}
	if a.router.Current().Path != p {
		if a.isLoggedIn() {
			a.println("Access denied.")
		} else {
			a.println("Please log in first.")
		}
		return false, nil
	}
	return true, nil
}
