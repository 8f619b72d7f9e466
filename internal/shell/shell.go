package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"currency-exchange-cli/internal/exchange"
)

// Exchanger is the client surface the shell drives. It matches
// *exchange.Client and lets tests substitute a scripted client.
type Exchanger interface {
	LatestRates(ctx context.Context, currency string) (map[string]float64, error)
	PairRate(ctx context.Context, from, to string) (float64, error)
	Convert(ctx context.Context, from, to string, amount float64) (float64, error)
	HistoricalRates(ctx context.Context, currency string, year, month, day int) (map[string]float64, error)
}

const menu = "What do you want to know? Please enter the number of your option\n" +
	"1. Find out the actual exchange rate for a specific currency\n" +
	"2. Find out the actual exchange rate for a currency pair\n" +
	"3. Find out the amount of money when exchanging one currency for another\n" +
	"4. Find out the exchange rate for specific date\n" +
	"Your answer: "

const currencyCodeHint = "We use ISO 4217 Three Letter Currency Codes - e.g. USD for US Dollars, EUR for Euro etc."

// Shell runs a single menu-driven exchange query: one selector, one prompt
// sequence, one client call, one printed result.
type Shell struct {
	in     *bufio.Reader
	out    io.Writer
	client Exchanger
}

// New creates a shell reading prompts from in and printing to out.
func New(in io.Reader, out io.Writer, client Exchanger) *Shell {
	return &Shell{
		in:     bufio.NewReader(in),
		out:    out,
		client: client,
	}
}

// Run reads one menu selection, performs the chosen query and prints the
// result. A selector outside 1-4 prints "Invalid input" without touching the
// client. Remote rejections are printed and are not an error; transport and
// parse failures are returned to the caller.
func (shell *Shell) Run(ctx context.Context) error {
	answer, err := shell.prompt(menu)
	if err != nil {
		return err
	}

	choice, err := strconv.Atoi(answer)
	if err != nil {
		return fmt.Errorf("menu selection %q is not a number", answer)
	}

	switch choice {
	case 1:
		return shell.runLatestRates(ctx)
	case 2:
		return shell.runPairRate(ctx)
	case 3:
		return shell.runConvert(ctx)
	case 4:
		return shell.runHistoricalRates(ctx)
	default:
		fmt.Fprintln(shell.out, "Invalid input")
		return nil
	}
}

func (shell *Shell) runLatestRates(ctx context.Context) error {
	currency, err := shell.prompt("What currency?\n" + currencyCodeHint + "\nYour answer: ")
	if err != nil {
		return err
	}

	rates, err := shell.client.LatestRates(ctx, currency)
	if err != nil {
		return shell.reportError(err)
	}

	formatted, err := exchange.FormatRates(rates)
	if err != nil {
		return err
	}
	fmt.Fprintln(shell.out, formatted)
	return nil
}

func (shell *Shell) runPairRate(ctx context.Context) error {
	from, err := shell.prompt("What currency rate do you want to know?\n" + currencyCodeHint + "\nYour answer: ")
	if err != nil {
		return err
	}
	to, err := shell.prompt("Relative to what currency?\nYour answer: ")
	if err != nil {
		return err
	}

	rate, err := shell.client.PairRate(ctx, from, to)
	if err != nil {
		return shell.reportError(err)
	}
	fmt.Fprintln(shell.out, rate)
	return nil
}

func (shell *Shell) runConvert(ctx context.Context) error {
	from, err := shell.prompt("What currency rate do you want to know?\n" + currencyCodeHint + "\nYour answer: ")
	if err != nil {
		return err
	}
	to, err := shell.prompt("Relative to what currency?\nYour answer: ")
	if err != nil {
		return err
	}
	answer, err := shell.prompt("What amount?\nYour answer: ")
	if err != nil {
		return err
	}
	amount, err := parseAmount(answer)
	if err != nil {
		return err
	}

	result, err := shell.client.Convert(ctx, from, to, amount)
	if err != nil {
		return shell.reportError(err)
	}
	fmt.Fprintln(shell.out, result)
	return nil
}

func (shell *Shell) runHistoricalRates(ctx context.Context) error {
	currency, err := shell.prompt("What currency rate do you want to know?\n" + currencyCodeHint + "\nYour answer: ")
	if err != nil {
		return err
	}
	answer, err := shell.prompt("What date? Please enter your date in format YYYY-MM-DD\nYour answer: ")
	if err != nil {
		return err
	}
	year, month, day, err := parseDate(answer)
	if err != nil {
		return err
	}

	rates, err := shell.client.HistoricalRates(ctx, currency, year, month, day)
	if err != nil {
		return shell.reportError(err)
	}

	formatted, err := exchange.FormatRates(rates)
	if err != nil {
		return err
	}
	fmt.Fprintln(shell.out, formatted)
	return nil
}

// reportError prints remote rejections and swallows them; anything else goes
// back to the caller untouched.
func (shell *Shell) reportError(err error) error {
	var statusError *exchange.StatusError
	if errors.As(err, &statusError) {
		fmt.Fprintln(shell.out, statusError.Error())
		return nil
	}
	return err
}

// prompt writes the prompt text and reads one trimmed line of input. A final
// line without a trailing newline is still accepted.
func (shell *Shell) prompt(text string) (string, error) {
	fmt.Fprint(shell.out, text)

	line, err := shell.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// parseDate splits a YYYY-MM-DD string into its integer components.
func parseDate(value string) (year, month, day int, err error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("date %q is not in YYYY-MM-DD form", value)
	}

	numbers := make([]int, len(parts))
	for i, part := range parts {
		number, convErr := strconv.Atoi(part)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("date component %q is not a number", part)
		}
		numbers[i] = number
	}
	return numbers[0], numbers[1], numbers[2], nil
}

// parseAmount parses a monetary amount entered at the prompt.
func parseAmount(value string) (float64, error) {
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", value)
	}
	return amount, nil
}
