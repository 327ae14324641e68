package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"

	"vitae/internal/config"
	"vitae/internal/document"
	"vitae/internal/editor"
	"vitae/internal/export"
	"vitae/internal/render"
	"vitae/internal/seed"
	"vitae/internal/storage"
)

const defaultResume = "resume.json"

var (
	verbose    bool
	configPath string
	fromSaved  bool

	exportFormat string
	exportOut    string

	renderOut    string
	renderWidth  int
	renderHeight int
	renderZoom   float64
	renderSelect string
	renderDark   bool
	renderNoGrid bool
)

var rootCmd = &cobra.Command{
	Use:   "vitae",
	Short: "Lay out a résumé on a fixed page and export it",
	Long: `vitae turns résumé data into a page of positioned text, shapes and images.
Edit the page in the terminal, then export it as a print-ready PDF or PNG.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [resume.json]",
	Short: "Open the page editor",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger, closeLog, err := fileLogger()
		if err != nil {
			fatal("Error opening log", err)
		}
		defer closeLog()

		s, err := openSession(resumeArg(args), logger)
		if err != nil && !errors.Is(err, seed.ErrNoResume) {
			fatal("Error loading résumé", err)
		}
		defer s.close()

		if err := runTUI(s, logger); err != nil {
			fatal("Error running editor", err)
		}
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [resume.json]",
	Short: "Export the page as PDF or PNG",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			fatal("Error", err)
		}
		s, err := openSession(resumeArg(args), slog.Default())
		if err != nil {
			fatal("Error loading résumé", err)
		}
		defer s.close()

		req := s.exportRequest(format)
		if exportOut != "" {
			req.Path = exportOut
		}
		path, err := export.Export(cmd.Context(), req)
		if err != nil {
			fatal("Error exporting", err)
		}
		fmt.Println(path)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [resume.json]",
	Short: "Write the editor's view of the page as PNG",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession(resumeArg(args), slog.Default())
		if err != nil {
			fatal("Error loading résumé", err)
		}
		defer s.close()

		ed := s.ed
		if renderSelect != "" && !ed.Doc.Select(renderSelect) {
			fatal("Error", fmt.Errorf("no element %q", renderSelect))
		}
		if renderZoom > 0 {
			ed.View.SetZoom(renderZoom)
		} else {
			pw, ph := ed.Doc.PageSize()
			ed.View.Fit(float64(renderWidth), float64(renderHeight), pw, ph, fitMargin)
		}
		ed.Dark = ed.Dark || renderDark
		ed.ShowGrid = ed.ShowGrid && !renderNoGrid

		r := render.New(nil, s.images, slog.Default())
		im := r.Frame(renderWidth, renderHeight, ed.Scene())
		if err := gg.SavePNG(renderOut, im); err != nil {
			fatal("Error writing PNG", err)
		}
		slog.Info("rendered", "path", renderOut, "zoom", ed.View.Zoom)
	},
}

var saveCmd = &cobra.Command{
	Use:   "save [resume.json]",
	Short: "Lay out the résumé and store it as the saved canvas",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession(resumeArg(args), slog.Default())
		if err != nil {
			fatal("Error loading résumé", err)
		}
		defer s.close()

		if err := s.db.SaveElements(storage.CanvasKey, s.ed.Doc.Elements()); err != nil {
			fatal("Error saving canvas", err)
		}
		fmt.Printf("saved %d elements to %s\n", s.ed.Doc.Len(), s.cfg.Database)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file")
	rootCmd.PersistentFlags().BoolVar(&fromSaved, "saved", false, "Start from the saved canvas instead of the résumé layout")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: pdf or png")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: <Name>_Resume.<ext> in the save directory)")

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "frame.png", "Output PNG")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1280, "Frame width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 960, "Frame height in pixels")
	renderCmd.Flags().Float64Var(&renderZoom, "zoom", 0, "Zoom factor (0 fits the page)")
	renderCmd.Flags().StringVar(&renderSelect, "select", "", "Element id to draw as selected")
	renderCmd.Flags().BoolVar(&renderDark, "dark", false, "Dark theme")
	renderCmd.Flags().BoolVar(&renderNoGrid, "no-grid", false, "Hide the grid")

	rootCmd.AddCommand(editCmd, exportCmd, renderCmd, saveCmd)
}

func resumeArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultResume
}

// session is everything one command works on.
type session struct {
	cfg    *config.Config
	resume *seed.Resume
	db     *storage.DB
	ed     *editor.Editor
	images render.ImageResolver
	// saved is set when the document came from the saved canvas.
	saved bool
}

// openSession loads the config, opens the canvas database and fills the
// document from the saved canvas or the résumé layout. With no résumé and no
// saved canvas it returns the session together with seed.ErrNoResume.
func openSession(resumePath string, log *slog.Logger) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	resume, resumeErr := seed.Load(resumePath)
	if resumeErr != nil && !errors.Is(resumeErr, seed.ErrNoResume) {
		return nil, resumeErr
	}

	db, err := storage.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	doc := document.New(cfg.PageWidth, cfg.PageHeight,
		document.WithHistoryLimit(cfg.HistoryLimit),
		document.WithLogger(log),
	)
	ed := editor.New(doc)
	ed.ShowGrid = cfg.ShowGrid
	ed.Dark = cfg.Dark

	s := &session{
		cfg:    cfg,
		resume: resume,
		db:     db,
		ed:     ed,
		images: render.NewFileImages(filepath.Dir(resumePath)),
	}

	if fromSaved {
		elems, err := db.LoadElements(storage.CanvasKey)
		switch {
		case err == nil:
			doc.Seed(elems)
			s.saved = true
			log.Info("loaded saved canvas", "elements", doc.Len())
			return s, nil
		case errors.Is(err, storage.ErrNotFound):
			log.Warn("no saved canvas, using résumé layout")
		default:
			db.Close()
			return nil, err
		}
	}

	if resume == nil {
		return s, resumeErr
	}
	doc.Seed(seed.Layout(resume))
	log.Debug("seeded from résumé", "path", resumePath, "elements", doc.Len())
	return s, nil
}

func (s *session) close() {
	if s != nil && s.db != nil {
		s.db.Close()
	}
}

func (s *session) authorName() string {
	if s.resume == nil {
		return ""
	}
	return s.resume.PersonalInfo.FullName
}

func (s *session) exportRequest(format export.Format) export.Request {
	pw, ph := s.ed.Doc.PageSize()
	return export.Request{
		Elements:   s.ed.Doc.Elements(),
		PageWidth:  pw,
		PageHeight: ph,
		Name:       s.authorName(),
		Format:     format,
		Path:       s.cfg.GetSavePath(export.Filename(s.authorName(), format)),
		Scale:      s.cfg.ExportScale,
		Images:     s.images,
	}
}

// fileLogger sends logs to vitae.log while the terminal belongs to the UI.
func fileLogger() (*slog.Logger, func(), error) {
	dir := config.Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "vitae.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}
