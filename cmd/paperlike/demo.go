// ABOUTME: Scripted in-memory editing session showing record, undo, redo, and branching
// ABOUTME: Prints a colorized trace of the history cursor after every operation

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/glassa-work/paperlike/internal/controller"
	"github.com/glassa-work/paperlike/internal/drawing"
	"github.com/glassa-work/paperlike/internal/store"
)

var (
	stepColor   = color.New(color.FgCyan)
	stateColor  = color.New(color.FgHiBlack)
	resultColor = color.New(color.FgGreen, color.Bold)
)

func runDemo(ctx context.Context) error {
	engine := store.NewMemoryEngine()
	ctrl := controller.New(drawing.NewDrawingID(), engine)

	unsubscribe := ctrl.OnChange(func(cs controller.ChangeState) {
		stateColor.Printf("    cursor=%d actions=%d canUndo=%v canRedo=%v\n",
			cs.HistoryState.UndoCursor, cs.HistoryState.ActionCount, cs.CanUndo, cs.CanRedo)
	})
	defer unsubscribe()

	rect := drawing.NewElement("rectangle", drawing.FieldPatch{
		"x": 10.0, "y": 10.0, "width": 120.0, "height": 80.0,
	})

	stepColor.Println("add rectangle")
	added, err := ctrl.AddElement(ctx, rect)
	if err != nil {
		return err
	}

	stepColor.Println("move rectangle to x=50")
	if err := ctrl.UpdateElement(ctx, added.ID(), drawing.FieldPatch{"x": 50.0}); err != nil {
		return err
	}

	stepColor.Println("add ellipse")
	ellipse := drawing.NewElement("ellipse", drawing.FieldPatch{
		"x": 200.0, "y": 40.0, "width": 60.0, "height": 60.0,
	})
	if _, err := ctrl.AddElement(ctx, ellipse); err != nil {
		return err
	}

	stepColor.Println("undo (removes ellipse)")
	if _, err := ctrl.Undo(ctx); err != nil {
		return err
	}

	stepColor.Println("add diamond (discards the ellipse's redo branch)")
	diamond := drawing.NewElement("diamond", drawing.FieldPatch{
		"x": 300.0, "y": 40.0, "width": 50.0, "height": 50.0,
	})
	if _, err := ctrl.AddElement(ctx, diamond); err != nil {
		return err
	}

	stepColor.Println("redo (no-op, branch was discarded)")
	ok, err := ctrl.Redo(ctx)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("redo succeeded after branch truncation")
	}

	scene, err := ctrl.Scene(ctx)
	if err != nil {
		return err
	}
	resultColor.Printf("final scene: %d elements, %d recorded actions\n",
		len(scene.Elements), ctrl.HistoryState().ActionCount)
	for _, el := range scene.Elements {
		fmt.Printf("  %s %s\n", el["type"], el.ID())
	}
	return nil
}
