package gui

import (
	"errors"

	"github.com/ncruces/zenity"
)

// ErrCanceled is returned when the file dialog is dismissed.
var ErrCanceled = errors.New("gui: no file selected")

var structureFilter = zenity.FileFilters{
	{Name: "Structure files", Patterns: []string{"*.pdb", "*.ent", "*.sdf", "*.mol", "*.xyz"}, CaseFold: true},
	{Name: "All files", Patterns: []string{"*"}},
}

// PickFile asks for a structure file with the native file dialog,
// starting in dir.
func PickFile(dir string) (string, error) {
	opts := []zenity.Option{zenity.Title("Open structure"), structureFilter}
	if dir != "" {
		opts = append(opts, zenity.Filename(dir+"/"))
	}
	path, err := zenity.SelectFile(opts...)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", ErrCanceled
	}
	return path, err
}

// ShowError reports a failure in a dialog box for sessions started
// without a terminal.
func ShowError(title string, err error) {
	_ = zenity.Error(err.Error(), zenity.Title(title), zenity.ErrorIcon)
}
