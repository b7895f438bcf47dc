package console

import (
	"fmt"
	"sort"
)

// Messages holds the format strings for one locale.
// Every locale takes the same arguments in the same order.
type Messages struct {
	Starting          string // entry point, directory
	EnvLoaded         string // count, path
	EnvMissing        string // path
	MissingEntryPoint string // path
	Launching         string // command line
	Running           string // pid
	Exited            string // exit code
	StartFailure      string // error
	Failure           string // error
	Done              string
	Pause             string
}

var catalogs = map[string]Messages{
	"en": {
		Starting:          "=== dotlaunch: starting %s in %s ===",
		EnvLoaded:         "Loaded %d variable(s) from %s",
		EnvMissing:        "Warning: %s not found, continuing without it",
		MissingEntryPoint: "Error: %s not found. Nothing was started.",
		Launching:         "Launching: %s",
		Running:           "The application is now running (pid %d)",
		Exited:            "The application exited with code %d",
		StartFailure:      "Error: the application could not be started: %s",
		Failure:           "Error: %s",
		Done:              "=== dotlaunch finished ===",
		Pause:             "Press Enter to continue...",
	},
	"fa": {
		Starting:          "=== dotlaunch: اجرای %s در %s ===",
		EnvLoaded:         "%d متغیر از %s بارگذاری شد",
		EnvMissing:        "هشدار: فایل %s یافت نشد، اجرا بدون آن ادامه می‌یابد",
		MissingEntryPoint: "خطا: فایل %s یافت نشد. هیچ برنامه‌ای اجرا نشد.",
		Launching:         "در حال اجرا: %s",
		Running:           "برنامه اکنون در حال اجراست (pid %d)",
		Exited:            "برنامه با کد %d خارج شد",
		StartFailure:      "خطا: برنامه اجرا نشد: %s",
		Failure:           "خطا: %s",
		Done:              "=== پایان dotlaunch ===",
		Pause:             "برای ادامه کلید Enter را بزنید...",
	},
}

// MessagesFor returns the catalog for locale.
func MessagesFor(locale string) (Messages, error) {
	m, ok := catalogs[locale]
	if !ok {
		return Messages{}, fmt.Errorf("unsupported locale %q (supported: %v)", locale, Locales())
	}
	return m, nil
}

// Locales lists the supported locales.
func Locales() []string {
	out := make([]string, 0, len(catalogs))
	for k := range catalogs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
