package console

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ReadlinePrompter lê respostas do terminal com histórico e TAB completando
// as opções do campo atual.
type ReadlinePrompter struct {
	rl *readline.Instance
}

func NewReadlinePrompter() (*ReadlinePrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryLimit:    -1,
	})
	if err != nil {
		return nil, err
	}

	return &ReadlinePrompter{rl: rl}, nil
}

func (p *ReadlinePrompter) Ask(prompt string, options []string) (string, error) {
	p.rl.Config.AutoComplete = optionCompleter(options)
	p.rl.SetPrompt(prompt)

	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", ErrAborted
	}
	return line, err
}

// Stdout é o writer que não corrompe a linha em edição
func (p *ReadlinePrompter) Stdout() io.Writer {
	return p.rl.Stdout()
}

func (p *ReadlinePrompter) Close() error {
	return p.rl.Close()
}

// optionCompleter completa pelo prefixo digitado, sem diferenciar maiúsculas.
// Nomes com espaço são tratados como uma única opção.
type optionCompleter []string

func (c optionCompleter) Do(line []rune, pos int) ([][]rune, int) {
	prefix := strings.ToLower(string(line[:pos]))

	var candidates [][]rune
	for _, option := range c {
		runes := []rune(option)
		if len(runes) >= pos && strings.HasPrefix(strings.ToLower(option), prefix) {
			candidates = append(candidates, runes[pos:])
		}
	}

	return candidates, pos
}
