package component

// Script runs a tengo script against the owning actor. Every is the period in
// frames; values <= 1 run every frame.
type Script struct {
	Path  string
	Every int
}

var ScriptComponent = NewComponent[Script]()
