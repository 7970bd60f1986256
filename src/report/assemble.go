// Package report assembles the immutable failure report handed to a
// renderer: the cause chain with classified frames, a redacted request
// snapshot, platform metadata and the process environment.
package report

import (
	"net/http"

	"tracepage/src/chain"
	"tracepage/src/classify"
	"tracepage/src/fallback"
	"tracepage/src/redact"
	"tracepage/src/settings"
	"tracepage/src/trace"
)

// DefaultFrameLimit caps the frames kept per error.
const DefaultFrameLimit = 15

type Assembler struct {
	Classifier *classify.Classifier
	Settings   *settings.Settings
	FrameLimit int
}

func NewAssembler(s *settings.Settings, frameLimit int) *Assembler {
	if frameLimit <= 0 {
		frameLimit = DefaultFrameLimit
	}
	if s == nil {
		s = settings.New()
	}
	return &Assembler{Classifier: classify.New(), Settings: s, FrameLimit: frameLimit}
}

// Build never panics. Optional fields that cannot be read are left empty.
func (a *Assembler) Build(req Request, err error) *Report {
	stack := a.stack(err)

	rep := &Report{
		ExceptionClass: QualifiedName(err),
		Message:        Message(err),
		Theme:          settings.Light,
		Stack:          stack,
		Request:        Snap(req),
		Platform:       fallback.Must(nil, Platform),
		Environment:    fallback.Must(nil, Environment),
	}
	if len(stack) > 0 {
		rep.Solution = stack[0].Solution
	}
	if a.Settings != nil {
		rep.Theme = a.Settings.Theme()
	}
	return rep
}

func (a *Assembler) stack(err error) []StackItem {
	if err == nil {
		return nil
	}

	c := fallback.Must(chain.Chain{{Err: err}}, func() chain.Chain { return chain.Walk(err, a.FrameLimit) })
	items := make([]StackItem, 0, len(c))
	for _, link := range c {
		items = append(items, StackItem{
			ExceptionClass: QualifiedName(link.Err),
			Message:        Message(link.Err),
			Solution:       link.Solution,
			Frames:         a.frames(link.Frames),
		})
	}
	return items
}

func (a *Assembler) frames(raw []trace.Frame) []Frame {
	classifier := a.Classifier
	if classifier == nil {
		classifier = &classify.Classifier{}
	}

	out := make([]Frame, 0, len(raw))
	for _, f := range raw {
		c := classifier.Classify(f)
		frame := Frame{
			ID:           c.ID,
			File:         f.File,
			RelativeFile: c.RelativeFile,
			Line:         f.Line,
			Function:     f.Function,
			Symbol:       c.Symbol,
			Package:      c.Package,
			Vendor:       c.Vendor,
		}
		for _, name := range sortedKeys(f.Locals) {
			frame.Locals = append(frame.Locals, Variable{Name: name, Value: FormatVariable(f.Locals[name])})
		}
		out = append(out, frame)
	}
	return out
}

// Snap copies req into a redacted Snapshot. A nil req gives an empty one.
func Snap(req Request) Snapshot {
	if req == nil {
		return Snapshot{}
	}

	header := fallback.Must(http.Header{}, req.Header)
	snap := Snapshot{
		Method:      fallback.Must("", req.Method),
		Path:        fallback.Must("", req.Path),
		ContentType: header.Get("Content-Type"),
		Client:      fallback.Must("unknown", req.RemoteAddr),
	}
	if snap.Client == "" {
		snap.Client = "unknown"
	}

	for _, p := range fallback.Must(nil, req.PathParams) {
		snap.PathParams = append(snap.PathParams, entry(p.Key, p.Value))
	}

	query := fallback.Must(nil, req.Query)
	for _, k := range sortedKeys(query) {
		for _, v := range query[k] {
			snap.QueryParams = append(snap.QueryParams, entry(k, v))
		}
	}

	for _, k := range sortedKeys(header) {
		for _, v := range header[k] {
			snap.Headers = append(snap.Headers, entry(k, v))
		}
	}

	for _, c := range fallback.Must(nil, req.Cookies) {
		snap.Cookies = append(snap.Cookies, entry(c.Name, c.Value))
	}

	snap.Session = entries(fallback.Value(nil, req.Session))
	snap.State = entries(fallback.Must(nil, req.State))
	snap.AppState = entries(fallback.Must(nil, req.AppState))
	return snap
}

func entry(key, value string) Entry {
	return Entry{Key: key, Value: redact.Redact(key, value)}
}

func entries(m map[string]any) []Entry {
	var out []Entry
	for _, k := range sortedKeys(m) {
		out = append(out, entry(k, FormatValue(m[k])))
	}
	return out
}
