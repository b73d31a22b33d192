package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "simtrader/internal/errors"
)

// Prompter reads one answer per line. Malformed numbers are rejected and the
// question is asked again; io.EOF is returned once input is exhausted.
type Prompter struct {
	in  *bufio.Reader
	out *Output
}

// NewPrompter creates a prompter reading from in and echoing prompts to out.
func NewPrompter(in io.Reader, out *Output) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Line prints label and returns the trimmed answer.
func (p *Prompter) Line(label string) (string, error) {
	p.out.Print(label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// NonEmpty asks until a non-blank answer is given.
func (p *Prompter) NonEmpty(label string) (string, error) {
	for {
		text, err := p.Line(label)
		if err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
		p.out.Error("A value is required.")
	}
}

// Int asks until a whole number is given.
func (p *Prompter) Int(label string) (int, error) {
	for {
		text, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		n, err := ParseQuantity(text)
		if err == nil {
			return n, nil
		}
		p.out.Error("Please enter a whole number.")
	}
}

// Balance asks until a non-negative amount is given.
func (p *Prompter) Balance(label string) (decimal.Decimal, error) {
	for {
		text, err := p.Line(label)
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := ParseBalance(text)
		if err == nil {
			return amount, nil
		}
		var ve *apperrors.ValidationError
		if apperrors.As(err, &ve) && ve.Message == msgAmountTooLarge {
			p.out.Error("Amount is too large.")
			continue
		}
		p.out.Error("Please enter a non-negative amount.")
	}
}

// Confirm asks a yes/no question. Anything but yes is a no.
func (p *Prompter) Confirm(label string) (bool, error) {
	text, err := p.Line(label)
	if err != nil {
		return false, err
	}
	return IsAffirmative(text), nil
}
