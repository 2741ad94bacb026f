//go:build nofocus

package focus

// Robot is the stand-in used by headless builds. It never finds or activates
// a window and refuses every gesture.
type Robot struct{}

// New returns the stub provider.
func New() *Robot { return &Robot{} }

// Check always reports ErrUnsupported.
func Check() error { return ErrUnsupported }

func (*Robot) Active() (Handle, bool) { return 0, false }
func (*Robot) Activate(Handle) bool   { return false }
func (*Robot) SwitchPrevious() error  { return ErrUnsupported }
func (*Robot) Paste() error           { return ErrUnsupported }
