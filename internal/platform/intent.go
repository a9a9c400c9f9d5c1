package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Intent actions
const (
	ActionView = "android.intent.action.VIEW"
)

// Command constants
const (
	AndroidActivityManager = "am"
	OpenCommand            = "open"
	XDGOpenCommand         = "xdg-open"
	CmdCommand             = "cmd"
	StartCommand           = "start"
	WindowsCmdFlag         = "/c"
)

// ErrUnsupportedOS is returned when no launcher exists for the running OS
var ErrUnsupportedOS = errors.New("unsupported operating system")

// Intent describes an activity launch request
type Intent struct {
	Action   string
	Data     string // URI
	MimeType string // optional
}

// AndroidArgs returns the activity manager arguments starting this intent
func (i Intent) AndroidArgs() []string {
	args := []string{"start", "-a", i.Action, "-d", i.Data}
	if i.MimeType != "" {
		args = append(args, "-t", i.MimeType)
	}
	return args
}

// runCommand is replaced in tests
var runCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// StartActivity launches the intent. On desktop systems the data URI is handed
// to the default opener, which resolves the handler from the URI or file type.
func StartActivity(intent Intent) error {
	if IsAndroid() {
		err := runCommand(AndroidActivityManager, intent.AndroidArgs()...)
		if err != nil && intent.MimeType != "" {
			// Some players register for the scheme only; let the system decide.
			untyped := intent
			untyped.MimeType = ""
			err = runCommand(AndroidActivityManager, untyped.AndroidArgs()...)
		}
		if err != nil {
			return fmt.Errorf("failed to start activity %s: %w", intent.Action, err)
		}
		return nil
	}

	target := desktopTarget(intent.Data)

	var err error
	switch runtime.GOOS {
	case OSDarwin:
		err = runCommand(OpenCommand, target)
	case OSWindows:
		err = runCommand(CmdCommand, WindowsCmdFlag, StartCommand, "", target)
	case OSLinux:
		err = runCommand(XDGOpenCommand, target)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	return nil
}

// OpenVideo opens a local video file in the platform player
func OpenVideo(uri, mimeType string) error {
	return StartActivity(Intent{Action: ActionView, Data: uri, MimeType: mimeType})
}

// desktopTarget turns file:// URIs into paths; desktop openers handle both but
// Windows start does not accept file URIs reliably
func desktopTarget(uri string) string {
	if runtime.GOOS == OSWindows && strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}
	return uri
}
