package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/staking"
)

// PromptOdds asks for each game's moneylines on a terminal. A blank line
// skips the game. Input is re-requested until it passes ValidateOddsInput.
type PromptOdds struct {
	in        *bufio.Reader
	out       io.Writer
	minLength int
	now       func() time.Time
}

// NewPromptOdds creates an interactive odds source
func NewPromptOdds(in io.Reader, out io.Writer, minLength int) *PromptOdds {
	return &PromptOdds{
		in:        bufio.NewReader(in),
		out:       out,
		minLength: minLength,
		now:       time.Now,
	}
}

// OddsFor implements OddsSource
func (p *PromptOdds) OddsFor(ctx context.Context, game models.Game) (*models.GameOdds, error) {
	home, err := p.ask(ctx, fmt.Sprintf("%s (home) odds vs %s: ", game.HomeTeamName, game.AwayTeamName))
	if err != nil || home == "" {
		return nil, skipOrErr(err)
	}
	away, err := p.ask(ctx, fmt.Sprintf("%s (away) odds at %s: ", game.AwayTeamName, game.HomeTeamName))
	if err != nil || away == "" {
		return nil, skipOrErr(err)
	}
	return &models.GameOdds{
		GamePK:     game.GamePK,
		HomeOdds:   home,
		AwayOdds:   away,
		RecordedAt: p.now().UTC(),
	}, nil
}

func skipOrErr(err error) error {
	if err == nil {
		return models.ErrNotFound
	}
	return err
}

func (p *PromptOdds) ask(ctx context.Context, prompt string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(p.out, prompt)
		line, err := p.in.ReadString('\n')
		line = strings.TrimSpace(line)
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return "", fmt.Errorf("failed to read odds: %w", err)
		}
		if line == "" {
			return "", nil
		}
		if verr := staking.ValidateOddsInput(line, p.minLength); verr != nil {
			fmt.Fprintf(p.out, "invalid odds: %v\n", verr)
			if eof {
				return "", nil
			}
			continue
		}
		return line, nil
	}
}

// FixedOdds serves odds given up front for a single game
type FixedOdds struct {
	GamePK   int64
	HomeOdds string
	AwayOdds string
}

// OddsFor implements OddsSource
func (f FixedOdds) OddsFor(_ context.Context, game models.Game) (*models.GameOdds, error) {
	if game.GamePK != f.GamePK {
		return nil, models.ErrNotFound
	}
	return &models.GameOdds{GamePK: f.GamePK, HomeOdds: f.HomeOdds, AwayOdds: f.AwayOdds, RecordedAt: time.Now().UTC()}, nil
}

// ChainOdds asks each source in turn until one has the game
type ChainOdds []OddsSource

// OddsFor implements OddsSource
func (c ChainOdds) OddsFor(ctx context.Context, game models.Game) (*models.GameOdds, error) {
	for _, src := range c {
		o, err := src.OddsFor(ctx, game)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		return o, err
	}
	return nil, models.ErrNotFound
}
