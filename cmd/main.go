package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"firesale/internal/connect"
	"firesale/internal/controller"
	"firesale/internal/repository"
	"firesale/internal/service"
	"firesale/internal/view"
	"firesale/pkg/config"
	"firesale/pkg/localization"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("firesale")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	var verbose int

	cmd := &cobra.Command{
		Use:          "firesale [file]",
		Short:        "Minimal markdown editor with live preview",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(1+verbose, nil)
			return run(cfgFile, args)
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/fire-sale/config.json)")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	return cmd
}

func run(cfgFile string, args []string) error {
	v := config.New(cfgFile)
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	locale, err := localization.NewLocale(cfg.Language)
	if err != nil {
		log.Warningf("%v, falling back to en", err)
		if locale, err = localization.NewLocale("en"); err != nil {
			return err
		}
	}

	events := connect.NewChannel(connect.DefaultBuffer)
	defer events.Close()

	repo := repository.NewDocumentRepository(nil)
	recent := service.NewRecentService(v)
	dialogs := view.NativeDialogs{}

	host := controller.NewHostController(
		dialogs,
		repo,
		service.NewExportService(repo.Fs()),
		events,
		controller.HostOptions{
			DocumentsDir:  config.DocumentsDir(),
			HTMLExportDir: cfg.HTMLExportDir,
		},
	).WithRecent(recent).WithShell(service.NewShellService()).WithTranslator(locale)

	if cfg.WatchFiles {
		watcher, err := service.NewWatchService(host.FileChanged)
		if err != nil {
			log.Warningf("file watching disabled: %v", err)
		} else {
			defer watcher.Close()
			host.WithWatcher(watcher)
		}
	}

	a := app.NewWithID("io.firesale.editor")
	mw := view.NewMainWindow(a, locale, recent, dialogs,
		fyne.NewSize(float32(cfg.WindowSize.Width), float32(cfg.WindowSize.Height)))
	mw.Bind(controller.NewViewController(host, service.NewRenderService(), mw, locale))
	mw.OnLanguageChanged(func(lang string) {
		v.Set(config.KeyLanguage, lang)
		if err := config.Save(v); err != nil {
			log.Warningf("save language: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go events.Listen(ctx, func(ev connect.Event) {
		fyne.Do(func() { mw.HandleEvent(ev) })
	})

	if len(args) == 1 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve %s: %w", args[0], err)
		}
		if err := host.OpenFile(path); err != nil {
			log.Errorf("%v", err)
		}
	}

	mw.Show()
	return nil
}
