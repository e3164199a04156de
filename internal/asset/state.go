package asset

import "fmt"

// Phase names the active FetchState variant.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// FailureKind classifies a Failed state.
type FailureKind string

const (
	// FailureTransient means the retry budget ran out on transient errors.
	FailureTransient FailureKind = "transient"
	// FailureTerminal means the service rejected the request outright.
	FailureTerminal FailureKind = "terminal"
	// FailureMissingAsset means the service succeeded without an image part.
	FailureMissingAsset FailureKind = "missing_asset"
	// FailureUndecodable means the image bytes did not decode.
	FailureUndecodable FailureKind = "undecodable"
)

// Image is a displayable generated background.
type Image struct {
	MIMEType string
	Data     []byte
	Width    int
	Height   int
}

// State is a snapshot of one slide's fetch lifecycle. Image is set only in
// PhaseLoaded; Description and Kind only in PhaseFailed.
type State struct {
	Phase       Phase
	Image       *Image
	Description string
	Kind        FailureKind
}

// Idle, Loading, Loaded and Failed build the four variants.
func Idle() State    { return State{Phase: PhaseIdle} }
func Loading() State { return State{Phase: PhaseLoading} }

func Loaded(img *Image) State {
	return State{Phase: PhaseLoaded, Image: img}
}

func Failed(kind FailureKind, description string) State {
	return State{Phase: PhaseFailed, Kind: kind, Description: description}
}

func (s State) String() string {
	switch s.Phase {
	case PhaseLoaded:
		if s.Image != nil {
			return fmt.Sprintf("loaded(%s %dx%d)", s.Image.MIMEType, s.Image.Width, s.Image.Height)
		}
	case PhaseFailed:
		return fmt.Sprintf("failed(%s: %s)", s.Kind, s.Description)
	}
	return s.Phase.String()
}
