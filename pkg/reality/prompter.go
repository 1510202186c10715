package reality

// Prompter is the input side of the turn loop. Prompt prints prompt (which may
// be empty) and blocks for one trimmed line of input. It never fails: a read
// error or end of input comes back as "".
type Prompter interface {
	Prompt(prompt string) string
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(prompt string) string

func (f PrompterFunc) Prompt(prompt string) string {
	return f(prompt)
}
