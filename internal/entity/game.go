package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is a session between a human and the solver.
type Game struct {
	ID        string             `json:"id"`
	Board     tictactoe.Board    `json:"board"`
	HumanMark tictactoe.Player   `json:"human_mark"`
	Status    string             `json:"status"`
	Winner    string             `json:"winner"`
	Moves     []tictactoe.Action `json:"moves,omitempty"`
}

func NewGame(id string, humanMark tictactoe.Player) *Game {
	return &Game{
		ID:        id,
		Board:     tictactoe.InitialState(),
		HumanMark: humanMark,
		Status:    StatusOngoing,
	}
}

func (that *Game) BotMark() tictactoe.Player {
	return that.HumanMark.Opponent()
}

func (that *Game) IsHumanTurn() bool {
	return that.Board.Player() == that.HumanMark
}

// Play applies action for whoever is to move and refreshes the status.
// On error the game is left as it was.
func (that *Game) Play(action tictactoe.Action) error {
	next, err := that.Board.Apply(action)
	if err != nil {
		return err
	}

	that.Board = next
	that.Moves = append(that.Moves, action)
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	winner, ok := that.Board.Winner()
	switch {
	// one player wins
	case ok:
		that.Winner = winner.String()
		that.Status = StatusFinished
	// tie
	case that.Board.IsTerminal():
		that.Winner = PlayerTie
		that.Status = StatusFinished
	// game continue
	default:
		that.Winner = ""
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
