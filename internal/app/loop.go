package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-cli/internal/models"
)

const (
	banner         = "Weather CLI"
	promptCity     = "Enter the city name:"
	promptCountry  = "Enter the country code (e.g., IN for India):"
	promptContinue = "Do you want to check the weather for another city? (yes/no)"
	farewell       = "Goodbye!"

	// Affirmative is the only answer that keeps the loop going. The match is
	// exact and case-sensitive after trimming surrounding whitespace.
	Affirmative = "yes"
)

type weatherService interface {
	GetByLocation(ctx context.Context, city, countryCode string) (models.WeatherRecord, error)
}

type renderer interface {
	Print(w io.Writer, r models.WeatherRecord) error
	Headline(text string) string
	Prompt(text string) string
	Farewell(text string) string
}

// Loop prompts for a location, shows its weather and asks whether to go on.
type Loop struct {
	service   weatherService
	presenter renderer
	in        *bufio.Scanner
	out       io.Writer
	errOut    io.Writer
	log       zerolog.Logger
}

func NewLoop(
	service weatherService,
	presenter renderer,
	in io.Reader,
	out, errOut io.Writer,
	logger zerolog.Logger,
) *Loop {
	return &Loop{
		service:   service,
		presenter: presenter,
		in:        bufio.NewScanner(in),
		out:       out,
		errOut:    errOut,
		log:       logger,
	}
}

// IsAffirmative reports whether answer asks for another round.
func IsAffirmative(answer string) bool {
	return answer == Affirmative
}

// Run blocks until the user declines to continue or input ends. End of
// input is a normal exit; other read errors are returned.
func (l *Loop) Run(ctx context.Context) error {
	l.println(l.out, l.presenter.Headline(banner))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		city, err := l.ask(promptCity)
		if err != nil {
			return l.stop(err)
		}
		countryCode, err := l.ask(promptCountry)
		if err != nil {
			return l.stop(err)
		}

		l.display(ctx, city, countryCode)

		answer, err := l.ask(promptContinue)
		if err != nil {
			return l.stop(err)
		}
		if !IsAffirmative(answer) {
			l.log.Debug().Str("answer", answer).Msg("user declined another lookup")
			l.println(l.out, l.presenter.Farewell(farewell))
			return nil
		}
	}
}

func (l *Loop) display(ctx context.Context, city, countryCode string) {
	record, err := l.service.GetByLocation(ctx, city, countryCode)
	if err != nil {
		l.log.Error().
			Err(err).
			Str("city", city).
			Str("country", countryCode).
			Msg("weather lookup failed")
		l.println(l.errOut, "Error: "+err.Error())
		return
	}

	if err := l.presenter.Print(l.out, record); err != nil {
		l.log.Error().Err(err).Msg("failed to write weather report")
	}
}

func (l *Loop) ask(prompt string) (string, error) {
	l.println(l.out, l.presenter.Prompt(prompt))

	if !l.in.Scan() {
		if err := l.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(l.in.Text()), nil
}

func (l *Loop) stop(err error) error {
	if errors.Is(err, io.EOF) {
		l.log.Info().Msg("input closed, exiting")
		return nil
	}
	return fmt.Errorf("read input: %w", err)
}

func (l *Loop) println(w io.Writer, text string) {
	if _, err := fmt.Fprintln(w, text); err != nil {
		l.log.Error().Err(err).Msg("failed to write to console")
	}
}
