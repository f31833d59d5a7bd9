package game

import (
	"sensorsim/internal/obstacles"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxUndoStack = 50

// UndoActionType represents the type of action that can be undone
type UndoActionType int

const (
	UndoMove UndoActionType = iota
	UndoDelete
	UndoAdd
)

// UndoState captures state for undo operations
type UndoState struct {
	Type     UndoActionType
	ID       string
	Position rl.Vector3

	// For delete undo - the whole record so it can be re-added
	Deleted obstacles.Obstacle
}

func (e *Editor) pushMoveUndo(o obstacles.Obstacle) {
	e.addUndoState(UndoState{Type: UndoMove, ID: o.ID, Position: o.Position})
}

func (e *Editor) pushDeleteUndo(o obstacles.Obstacle) {
	e.addUndoState(UndoState{Type: UndoDelete, ID: o.ID, Deleted: o})
}

func (e *Editor) pushAddUndo(id string) {
	e.addUndoState(UndoState{Type: UndoAdd, ID: id})
}

func (e *Editor) addUndoState(state UndoState) {
	// Cap stack size
	if len(e.undoStack) >= maxUndoStack {
		e.undoStack = e.undoStack[1:]
	}
	e.undoStack = append(e.undoStack, state)
}

func (e *Editor) UndoDepth() int {
	return len(e.undoStack)
}

// Undo reverts the last move, delete or add. It reports false when there was
// nothing to undo.
func (e *Editor) Undo() bool {
	if len(e.undoStack) == 0 {
		return false
	}
	// Pop last state
	state := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.dragging = false

	switch state.Type {
	case UndoMove:
		pos := state.Position
		if e.scene.Obstacles.Update(state.ID, &pos, nil) {
			e.scene.Obstacles.Select(state.ID)
		}

	case UndoDelete:
		// The id may have been reused since; Add overwrites in that case.
		if e.scene.Obstacles.Add(state.Deleted) {
			e.scene.Obstacles.Select(state.ID)
			e.setMsg("Restored %s", state.ID)
		}

	case UndoAdd:
		e.scene.Obstacles.Remove(state.ID)
	}
	return true
}
