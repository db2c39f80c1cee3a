package view

import (
	"path/filepath"

	"firesale/internal/connect"
	"firesale/internal/controller"
	"firesale/pkg/localization"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tliron/commonlog"
)

func logger() commonlog.Logger { return commonlog.GetLogger("firesale.ui") }

type RecentLister interface {
	List() []string
}

type Alerter interface {
	Alert(title, message string)
}

// MainWindow is the fyne implementation of controller.ViewModel.
type MainWindow struct {
	app     fyne.App
	window  fyne.Window
	locale  *localization.Locale
	recent  RecentLister
	alerter Alerter
	ctrl    *controller.ViewController

	editor  *widget.Entry
	preview *widget.RichText

	openBtn    *widget.Button
	saveBtn    *widget.Button
	revertBtn  *widget.Button
	htmlBtn    *widget.Button
	pdfBtn     *widget.Button
	showBtn    *widget.Button
	defaultBtn *widget.Button

	controls          controller.Controls
	settingText       bool
	onLanguageChanged func(lang string)
}

func NewMainWindow(app fyne.App, locale *localization.Locale, recent RecentLister, alerter Alerter, size fyne.Size) *MainWindow {
	w := app.NewWindow("Fire Sale")
	w.Resize(size)

	mw := &MainWindow{
		app:     app,
		window:  w,
		locale:  locale,
		recent:  recent,
		alerter: alerter,
	}

	mw.editor = widget.NewMultiLineEntry()
	mw.editor.Wrapping = fyne.TextWrapWord
	mw.preview = widget.NewRichTextFromMarkdown("")
	mw.preview.Wrapping = fyne.TextWrapWord

	mw.openBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), nil)
	mw.saveBtn = widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), nil)
	mw.revertBtn = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), nil)
	mw.htmlBtn = widget.NewButtonWithIcon("", theme.FileIcon(), nil)
	mw.pdfBtn = widget.NewButtonWithIcon("", theme.DocumentPrintIcon(), nil)
	mw.showBtn = widget.NewButtonWithIcon("", theme.FolderIcon(), nil)
	mw.defaultBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), nil)
	mw.relabel()

	return mw
}

// Bind connects widgets to ctrl and builds the window content.
func (mw *MainWindow) Bind(ctrl *controller.ViewController) {
	mw.ctrl = ctrl

	mw.editor.OnChanged = func(text string) {
		if mw.settingText {
			return
		}
		ctrl.HandleEdit(text)
	}
	mw.openBtn.OnTapped = ctrl.OpenClicked
	mw.saveBtn.OnTapped = ctrl.SaveClicked
	mw.revertBtn.OnTapped = ctrl.RevertClicked
	mw.htmlBtn.OnTapped = ctrl.SaveHTMLClicked
	mw.pdfBtn.OnTapped = ctrl.SavePDFClicked
	mw.showBtn.OnTapped = ctrl.ShowFileClicked
	mw.defaultBtn.OnTapped = ctrl.OpenDefaultClicked

	mw.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		files := make([]controller.DroppedFile, 0, len(uris))
		for _, u := range uris {
			files = append(files, controller.DroppedFile{Path: u.Path(), MimeType: u.MimeType()})
		}
		ctrl.Dropped(files)
	})

	toolbar := container.NewHBox(
		mw.openBtn,
		mw.saveBtn,
		mw.revertBtn,
		widget.NewSeparator(),
		mw.htmlBtn,
		mw.pdfBtn,
		widget.NewSeparator(),
		mw.showBtn,
		mw.defaultBtn,
	)

	split := container.NewHSplit(mw.editor, container.NewVScroll(mw.preview))
	split.Offset = 0.5

	mw.window.SetContent(container.NewBorder(toolbar, nil, nil, nil, split))
	mw.window.SetMainMenu(mw.setupMenu())

	ctrl.Start()
}

// OnLanguageChanged registers a callback used to persist the language choice.
func (mw *MainWindow) OnLanguageChanged(fn func(lang string)) {
	mw.onLanguageChanged = fn
}

// HandleEvent applies a host event on the UI thread.
func (mw *MainWindow) HandleEvent(ev connect.Event) {
	mw.ctrl.HandleEvent(ev)
	if ev.Kind == connect.FileOpened {
		mw.window.SetMainMenu(mw.setupMenu())
	}
}

func (mw *MainWindow) Show() {
	mw.window.ShowAndRun()
}

func (mw *MainWindow) SetTitle(title string) {
	mw.window.SetTitle(title)
}

// SetDocumentEdited highlights the save button while there are unsaved edits.
func (mw *MainWindow) SetDocumentEdited(edited bool) {
	if edited {
		mw.saveBtn.Importance = widget.HighImportance
	} else {
		mw.saveBtn.Importance = widget.MediumImportance
	}
	mw.saveBtn.Refresh()
}

func (mw *MainWindow) SetEditorText(text string) {
	if mw.editor.Text == text {
		return
	}
	mw.settingText = true
	mw.editor.SetText(text)
	mw.settingText = false
}

// SetPreview redraws the preview. fyne has no HTML view, so the pane is laid
// out from the markdown; html is what the exports use.
func (mw *MainWindow) SetPreview(markdown, html string) {
	mw.preview.ParseMarkdown(markdown)
}

func (mw *MainWindow) SetControls(c controller.Controls) {
	changed := c != mw.controls
	mw.controls = c
	setEnabled(mw.openBtn, c.Open)
	setEnabled(mw.saveBtn, c.Save)
	setEnabled(mw.revertBtn, c.Revert)
	setEnabled(mw.htmlBtn, c.SaveHTML)
	setEnabled(mw.pdfBtn, c.SavePDF)
	setEnabled(mw.showBtn, c.ShowFile)
	setEnabled(mw.defaultBtn, c.OpenDefault)
	if changed {
		mw.window.SetMainMenu(mw.setupMenu())
	}
}

func (mw *MainWindow) Alert(title, message string) {
	mw.alerter.Alert(title, message)
}

func (mw *MainWindow) setupMenu() *fyne.MainMenu {
	t := mw.locale.Translate

	recentItem := fyne.NewMenuItem(t("Open Recent"), nil)
	var recentItems []*fyne.MenuItem
	for _, p := range mw.recent.List() {
		path := p
		recentItems = append(recentItems, fyne.NewMenuItem(filepath.Base(path)+"  "+filepath.Dir(path), func() {
			mw.ctrl.OpenRecent(path)
		}))
	}
	if len(recentItems) == 0 {
		recentItem.Disabled = true
	} else {
		recentItem.ChildMenu = fyne.NewMenu("", recentItems...)
	}

	fileMenu := fyne.NewMenu(t("File"),
		menuItem(t("Open File"), mw.ctrl.OpenClicked, mw.controls.Open),
		recentItem,
		fyne.NewMenuItemSeparator(),
		menuItem(t("Save File"), mw.ctrl.SaveClicked, mw.controls.Save),
		menuItem(t("Revert"), mw.ctrl.RevertClicked, mw.controls.Revert),
		fyne.NewMenuItemSeparator(),
		menuItem(t("Save HTML"), mw.ctrl.SaveHTMLClicked, mw.controls.SaveHTML),
		menuItem(t("Export to PDF"), mw.ctrl.SavePDFClicked, mw.controls.SavePDF),
		fyne.NewMenuItemSeparator(),
		menuItem(t("Show File"), mw.ctrl.ShowFileClicked, mw.controls.ShowFile),
		menuItem(t("Open in Default Application"), mw.ctrl.OpenDefaultClicked, mw.controls.OpenDefault),
	)

	var langItems []*fyne.MenuItem
	for _, lang := range localization.Languages() {
		l := lang
		item := fyne.NewMenuItem(l, func() { mw.changeLanguage(l) })
		item.Checked = l == mw.locale.Language()
		langItems = append(langItems, item)
	}
	langMenu := fyne.NewMenu(t("Language"), langItems...)

	return fyne.NewMainMenu(fileMenu, langMenu)
}

func (mw *MainWindow) changeLanguage(lang string) {
	if err := mw.locale.SetLanguage(lang); err != nil {
		logger().Errorf("change language: %v", err)
		return
	}
	mw.relabel()
	mw.window.SetMainMenu(mw.setupMenu())
	if mw.onLanguageChanged != nil {
		mw.onLanguageChanged(lang)
	}
}

func (mw *MainWindow) relabel() {
	t := mw.locale.Translate
	mw.openBtn.SetText(t("Open File"))
	mw.saveBtn.SetText(t("Save File"))
	mw.revertBtn.SetText(t("Revert"))
	mw.htmlBtn.SetText(t("Save HTML"))
	mw.pdfBtn.SetText(t("Export to PDF"))
	mw.showBtn.SetText(t("Show File"))
	mw.defaultBtn.SetText(t("Open in Default Application"))
}

func menuItem(label string, action func(), enabled bool) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, action)
	item.Disabled = !enabled
	return item
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}
