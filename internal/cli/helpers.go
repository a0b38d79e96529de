package cli

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Davincible/gfmat/internal/validation"
	"github.com/Davincible/gfmat/pkg/config"
	"github.com/Davincible/gfmat/pkg/crypto/blas"
	"github.com/Davincible/gfmat/pkg/crypto/gf256"
	"github.com/Davincible/gfmat/pkg/secure"
)

var (
	yellow = color.New(color.FgYellow, color.Bold)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan, color.Bold)
)

// session bundles what every command needs: configuration, the engine for
// the selected backend, and where to read and write.
type session struct {
	cm   *config.ConfigManager
	cfg  *config.Config
	eng  *blas.Engine
	json bool

	out    io.Writer
	prompt *prompter
}

func newSession(cmd *cobra.Command) (*session, error) {
	cm, err := config.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cm.GetConfig()

	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = cfg.Defaults.Backend
	}
	gf, err := gf256.Lookup(backend)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(gf256.Backends(), ", "))
	}

	if !cfg.UI.UseColor {
		color.NoColor = true
	}

	jsonOut, _ := cmd.Flags().GetBool("json")

	slog.Debug("Session ready", "command", cmd.Name(), "backend", gf.Name(), "config", cm.Path())

	return &session{
		cm:     cm,
		cfg:    cfg,
		eng:    blas.New(gf),
		json:   jsonOut,
		out:    cmd.OutOrStdout(),
		prompt: newPrompter(cmd),
	}, nil
}

// wipe zeroes b when the configuration asks for memory wiping.
func (s *session) wipe(b []byte) {
	if s.cfg.Security.WipeMemory {
		secure.Zero(b)
	}
}

// emit writes result as indented JSON in --json mode and calls text
// otherwise.
func (s *session) emit(result any, text func(w io.Writer)) error {
	if s.json {
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	text(s.out)
	return nil
}

// prompter reads interactive input. Prompts go to stderr so that stdout
// only carries results.
type prompter struct {
	in     *bufio.Reader
	fd     int
	tty    bool
	prompt io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	p := &prompter{
		in:     bufio.NewReader(cmd.InOrStdin()),
		prompt: cmd.ErrOrStderr(),
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Line reads one trimmed line.
func (p *prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.prompt, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Secret reads a line without echo when stdin is a terminal.
func (p *prompter) Secret(prompt string) ([]byte, error) {
	if !p.tty {
		line, err := p.Line(prompt)
		return []byte(line), err
	}

	fmt.Fprint(p.prompt, prompt)
	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.prompt)
	if err != nil {
		return nil, err
	}
	return secret, nil
}

// NewPassword asks for a password twice and checks it against the
// configured minimum length.
func (p *prompter) NewPassword(minLength int) ([]byte, error) {
	first, err := p.Secret("Enter key file password: ")
	if err != nil {
		return nil, err
	}
	if err := validation.ValidatePassphrase(string(first), minLength); err != nil {
		secure.Zero(first)
		return nil, err
	}

	second, err := p.Secret("Confirm key file password: ")
	if err != nil {
		secure.Zero(first)
		return nil, err
	}
	defer secure.Zero(second)

	if !secure.ConstantTimeCompare(first, second) {
		secure.Zero(first)
		return nil, fmt.Errorf("passwords do not match")
	}
	return first, nil
}

// hexRows renders a row-major h×w matrix one hex string per row.
func hexRows(mat []byte, h, w int) []string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = hex.EncodeToString(mat[i*w : (i+1)*w])
	}
	return rows
}

func printMatrix(w io.Writer, mat []byte, h, width int) {
	for i := 0; i < h; i++ {
		row := mat[i*width : (i+1)*width]
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%02x", v)
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(cells, " "))
	}
}

func printRank(w io.Writer, fullRank bool) {
	if fullRank {
		green.Fprintln(w, "Full rank")
		return
	}
	red.Fprintln(w, "Rank deficient")
}
