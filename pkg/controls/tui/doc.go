// Package tui provides terminal controls for every form control kind, built
// on survey prompts.
//
//	reg, err := tui.NewRegistry()
//	if err != nil {
//		return err
//	}
//	return controls.Run(ctx, f, reg)
package tui
