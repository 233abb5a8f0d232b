package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

type Console struct {
	prompter Prompter
	client   *Client
	out      io.Writer
	now      func() time.Time
}

func New(prompter Prompter, client *Client, out io.Writer) *Console {
	return &Console{
		prompter: prompter,
		client:   client,
		out:      out,
		now:      time.Now,
	}
}

// Run executa um ciclo formulário -> requisição -> resultado por vez, até o
// operador desistir. Uma falha na requisição é exibida e não é repetida.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Simulador de Perda de Oportunidades CRM")
	fmt.Fprintf(c.out, "API: %s (TAB completa as opções, Ctrl-D sai)\n\n", c.client.URL())

	form := NewForm(c.prompter, c.out)
	form.now = c.now

	for {
		answers, err := form.Collect()
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := c.Submit(ctx, answers); err != nil {
			log.L.WithError(err).Debug("console: prediction request failed")
		}

		again, err := c.prompter.Ask("Nova predição? [s/N]: ", []string{"s", "n"})
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(again), "s") {
			return nil
		}
	}
}

// Submit envia uma única requisição e exibe o resultado ou o diagnóstico
func (c *Console) Submit(ctx context.Context, answers Answers) error {
	payload := BuildPayload(answers, c.now())

	result, err := c.client.Predict(ctx, payload)
	if err != nil {
		RenderError(c.out, c.client.URL(), err)
		return err
	}

	RenderResult(c.out, payload, result)
	return nil
}
