package target

import "strings"

const (
	placeholderInput   = "ACOVEA_INPUT"
	placeholderOutput  = "ACOVEA_OUTPUT"
	placeholderOptions = "ACOVEA_OPTIONS"
)

// renderArgv materializes an execv-compatible argument vector from tmpl:
//
//   - ACOVEA_INPUT and ACOVEA_OUTPUT are substituted verbatim within any
//     token that contains them.
//   - If quotedOptions, ACOVEA_OPTIONS is replaced within its token by the
//     space-joined rendering of every enabled gene (empty string if none).
//   - If not quotedOptions, the token containing ACOVEA_OPTIONS is dropped
//     and each rendered gene token is appended as its own argv entry in
//     that position.
func renderArgv(tmpl CommandTemplate, input, output string, rendered []string, quotedOptions bool) []string {
	argv := make([]string, 0, len(tmpl.Flags)+1+len(rendered))
	argv = append(argv, tmpl.Command)

	joined := strings.Join(rendered, " ")

	for _, tok := range tmpl.Flags {
		hasOptions := strings.Contains(tok, placeholderOptions)

		substituted := strings.ReplaceAll(tok, placeholderInput, input)
		substituted = strings.ReplaceAll(substituted, placeholderOutput, output)

		if !hasOptions {
			argv = append(argv, substituted)
			continue
		}

		if quotedOptions {
			substituted = strings.ReplaceAll(substituted, placeholderOptions, joined)
			argv = append(argv, substituted)
			continue
		}

		argv = append(argv, rendered...)
	}

	return argv
}
