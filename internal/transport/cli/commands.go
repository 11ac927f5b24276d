package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/lingodesk/internal/controller"
	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/form"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/internal/domain/speech"
	healthuc "github.com/kailas-cloud/lingodesk/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lingodesk/internal/usecase/search"
	"github.com/kailas-cloud/lingodesk/internal/version"
)

// ErrReported means the failure was already shown as a notice. Callers exit
// with status 1 without printing it again.
var ErrReported = errors.New("operation failed")

// VoiceLister lists speech voices.
type VoiceLister interface {
	Voices(ctx context.Context) ([]speech.Voice, error)
}

// IndexStats reports search index statistics.
type IndexStats interface {
	Stats(ctx context.Context) (searchuc.Stats, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// App is what the commands run against.
type App struct {
	Controller *controller.Controller
	Voices     VoiceLister
	Index      IndexStats
	Health     HealthChecker
}

// Globals are the persistent flags.
type Globals struct {
	Env        string
	BackendURL string
	Verbose    bool
	Yes        bool
}

// Factory builds the App once flags are parsed.
type Factory func(cmd *cobra.Command, g Globals) (*App, error)

// NewRootCommand builds the lingoctl command tree.
func NewRootCommand(build Factory) *cobra.Command {
	var g Globals
	var app *App

	root := &cobra.Command{
		Use:           "lingoctl",
		Short:         "Translate, manage documents and search from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			a, err := build(cmd, g)
			if err != nil {
				return err
			}
			app = a
			return nil
		},
	}
	root.PersistentFlags().StringVar(&g.Env, "env", "", "config environment (default $ENV or local)")
	root.PersistentFlags().StringVar(&g.BackendURL, "backend-url", "", "backend base URL (overrides config)")
	root.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "debug logging to stderr")
	root.PersistentFlags().BoolVarP(&g.Yes, "yes", "y", false, "skip delete confirmation")

	appFn := func() *App { return app }
	root.AddCommand(
		translateCmd(appFn, &g),
		languagesCmd(appFn),
		docsCmd(appFn, &g),
		searchCmd(appFn, &g),
		webSearchCmd(appFn, &g),
		speakCmd(appFn, &g),
		voicesCmd(appFn),
		statsCmd(appFn),
		healthCmd(appFn),
		versionCmd(),
	)
	return root
}

func terminalFor(cmd *cobra.Command, g *Globals) *terminal {
	return newTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), g.Yes)
}

// result maps the terminal outcome to the command error.
func result(t *terminal) error {
	if t.Failed() {
		return ErrReported
	}
	return nil
}

func translateCmd(app func() *App, g *Globals) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "translate TEXT...",
		Short: "Translate text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := terminalFor(cmd, g)
			_ = app().Controller.Translate(cmd.Context(), t, strings.Join(args, " "), code(from), code(to))
			return result(t)
		},
	}
	cmd.Flags().StringVar(&from, "from", "en", "source language")
	cmd.Flags().StringVar(&to, "to", "vi", "target language")
	return cmd
}

func languagesCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported translation directions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FROM\tTO\tNAME")
			for _, p := range app().Controller.Languages(cmd.Context()) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.From, p.To, p.Name)
			}
			return tw.Flush()
		},
	}
}

func docsCmd(app func() *App, g *Globals) *cobra.Command {
	docs := &cobra.Command{
		Use:   "docs",
		Short: "Manage documents",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := terminalFor(cmd, g)
			_ = app().Controller.LoadDocuments(cmd.Context(), t)
			return result(t)
		},
	}

	view := &cobra.Command{
		Use:   "view ID",
		Short: "Show a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := terminalFor(cmd, g)
			id, err := document.ParseID(args[0])
			if err != nil {
				return err
			}
			_ = app().Controller.ViewDocument(cmd.Context(), t, id)
			return result(t)
		},
	}

	var in draftFlags
	upload := &cobra.Command{
		Use:   "upload",
		Short: "Upload a document from flags or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := terminalFor(cmd, g)
			draft, err := in.draft()
			if err != nil {
				return err
			}
			_, _ = app().Controller.SubmitDocument(cmd.Context(), t, form.Create(), draft)
			return result(t)
		},
	}
	in.bind(upload, true)

	var up draftFlags
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a document's title, content and language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := terminalFor(cmd, g)
			id, err := document.ParseID(args[0])
			if err != nil {
				return err
			}
			draft, err := up.draft()
			if err != nil {
				return err
			}
			_, _ = app().Controller.SubmitDocument(cmd.Context(), t, form.Edit(id), draft)
			return result(t)
		},
	}
	up.bind(update, false)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := terminalFor(cmd, g)
			id, err := document.ParseID(args[0])
			if err != nil {
				return err
			}
			_, _ = app().Controller.DeleteDocument(cmd.Context(), t, form.Create(), id)
			return result(t)
		},
	}

	docs.AddCommand(list, view, upload, update, del)
	return docs
}

// draftFlags binds the document form to flags.
type draftFlags struct {
	title    string
	content  string
	language string
	file     string
}

func (f *draftFlags) bind(cmd *cobra.Command, withFile bool) {
	cmd.Flags().StringVar(&f.title, "title", "", "document title")
	cmd.Flags().StringVar(&f.content, "content", "", "document content")
	cmd.Flags().StringVar(&f.language, "language", "en", "document language")
	if withFile {
		cmd.Flags().StringVar(&f.file, "file", "", "upload this file instead of --content")
	}
}

func (f *draftFlags) draft() (document.Draft, error) {
	d := document.Draft{Title: f.title, Content: f.content, Language: code(f.language)}
	if f.file == "" {
		return d, nil
	}
	path := filepath.Clean(f.file)
	info, err := os.Stat(path)
	if err != nil {
		return d, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return d, fmt.Errorf("%s is a directory", path)
	}
	d.File = &document.File{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
	return d, nil
}

func searchCmd(app func() *App, g *Globals) *cobra.Command {
	var topK int
	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search stored documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := terminalFor(cmd, g)
			_ = app().Controller.Search(cmd.Context(), t, strings.Join(args, " "), topK)
			return result(t)
		},
	}
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of results (default from config, max 50)")
	return cmd
}

func webSearchCmd(app func() *App, g *Globals) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "web-search QUERY...",
		Short: "Search the web",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := terminalFor(cmd, g)
			_ = app().Controller.WebSearch(cmd.Context(), t, strings.Join(args, " "), limit)
			return result(t)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of results (default from config, max 20)")
	return cmd
}

func speakCmd(app func() *App, g *Globals) *cobra.Command {
	var lang, voice, output string
	cmd := &cobra.Command{
		Use:   "speak TEXT...",
		Short: "Synthesize speech and save it to a file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := terminalFor(cmd, g)
			t.audioPath = output
			_ = app().Controller.Speak(cmd.Context(), t, strings.Join(args, " "), code(lang), voice)
			return result(t)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "vi", "language of the text (vi or en)")
	cmd.Flags().StringVar(&voice, "voice", "", "voice key as listed by the voices command (default chosen by the backend)")
	cmd.Flags().StringVarP(&output, "output", "o", "speech.mp3", "audio output file")
	return cmd
}

func voicesCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List speech voices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			voices, err := app().Voices.Voices(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LANGUAGE\tKEY\tNAME")
			for _, v := range voices {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Language, v.Key, v.Name)
			}
			return tw.Flush()
		},
	}
}

func statsCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show search index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := app().Index.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "documents: %d\n", st.TotalDocuments)
			fmt.Fprintf(out, "indexed: %t\n", st.Indexed)
			if st.LastUpdated != "" {
				fmt.Fprintf(out, "last updated: %s\n", st.LastUpdated)
			}
			return nil
		},
	}
}

func healthCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := app().Health.Check(cmd.Context())
			names := make([]string, 0, len(report.Checks))
			for name := range report.Checks {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %s\n", report.Status)
			for _, name := range names {
				fmt.Fprintf(out, "  %s: %s\n", name, report.Checks[name])
			}
			if report.Status != healthuc.Healthy {
				return ErrReported
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// code canonicalizes a language flag. Unknown values are passed on empty and
// rejected by validation.
func code(raw string) language.Code {
	c, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	return c
}
