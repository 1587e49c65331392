package scene

import (
	"fmt"
	"image"
	"sort"
)

// LayerKind identifies a rendering layer. Persistent kinds draw in declaration
// order; LayerUI is the open kind keyed by scene name and ranks.
type LayerKind uint8

const (
	LayerTiles LayerKind = iota
	LayerContent
	LayerAgent
	LayerWeather
	LayerTimeOfDay
	LayerOverlayHover
	LayerOverlayHint
	persistentCount // sentinel
	LayerUI         = persistentCount
)

var layerNames = [persistentCount]string{
	LayerTiles:        "tiles",
	LayerContent:      "content",
	LayerAgent:        "agent",
	LayerWeather:      "weather",
	LayerTimeOfDay:    "time_of_day",
	LayerOverlayHover: "overlay_hover",
	LayerOverlayHint:  "overlay_hint",
}

func (k LayerKind) String() string {
	if k < persistentCount {
		return layerNames[k]
	}
	if k == LayerUI {
		return "ui"
	}
	return "unknown"
}

// PersistentLayers lists the long-lived layers in draw order.
func PersistentLayers() []LayerKind {
	out := make([]LayerKind, persistentCount)
	for i := range out {
		out[i] = LayerKind(i)
	}
	return out
}

// LayerID names one entity collection. For persistent layers only Kind is
// set; UI-scene layers carry the owning scene name and its ranks.
type LayerID struct {
	Kind     LayerKind
	Scene    string
	Rank     uint32
	Sublayer uint32
}

// Persistent returns the id of a persistent layer.
func Persistent(k LayerKind) LayerID { return LayerID{Kind: k} }

// UILayer returns the id of a UI-scene layer.
func UILayer(name string, rank, sublayer uint32) LayerID {
	return LayerID{Kind: LayerUI, Scene: name, Rank: rank, Sublayer: sublayer}
}

// IsUI reports whether the id names a UI-scene layer.
func (id LayerID) IsUI() bool { return id.Kind == LayerUI }

func (id LayerID) String() string {
	if id.IsUI() {
		return fmt.Sprintf("ui(%s,%d,%d)", id.Scene, id.Rank, id.Sublayer)
	}
	return id.Kind.String()
}

// uiLess orders UI layers by rank, then sublayer, then name for a stable order.
func uiLess(a, b LayerID) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	if a.Sublayer != b.Sublayer {
		return a.Sublayer < b.Sublayer
	}
	return a.Scene < b.Scene
}

// Registry holds every layer's entities. Persistent layers live for the
// process lifetime; UI-scene layers are created on first use and dropped when
// their scene is removed. The registry is owned by the frame loop and is not
// safe for concurrent use.
type Registry struct {
	persistent [persistentCount][]Entity
	ui         map[LayerID][]Entity
	book       sceneBook
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ui:   make(map[LayerID][]Entity),
		book: make(sceneBook),
	}
}

// Clear removes all entities from a layer, keeping the layer itself.
func (r *Registry) Clear(id LayerID) {
	if id.IsUI() {
		if _, ok := r.ui[id]; ok {
			r.ui[id] = r.ui[id][:0]
		}
		return
	}
	if id.Kind < persistentCount {
		r.persistent[id.Kind] = r.persistent[id.Kind][:0]
	}
}

// Add appends one entity. UI-scene layers are created lazily and recorded in
// the scene bookkeeping so RemoveScene can find them.
func (r *Registry) Add(id LayerID, pos image.Point, v Visual) {
	if id.IsUI() {
		r.book.record(id)
		r.ui[id] = append(r.ui[id], Entity{Pos: pos, Visual: v})
		return
	}
	if id.Kind < persistentCount {
		r.persistent[id.Kind] = append(r.persistent[id.Kind], Entity{Pos: pos, Visual: v})
	}
}

// Replace swaps the whole content of a layer.
func (r *Registry) Replace(id LayerID, entities []Entity) {
	r.Clear(id)
	for _, e := range entities {
		r.Add(id, e.Pos, e.Visual)
	}
}

// RemoveScene deletes every UI layer ever registered under name and forgets
// the name. Removing an unknown name is a no-op.
func (r *Registry) RemoveScene(name string) {
	for id := range r.book[name] {
		delete(r.ui, id)
	}
	delete(r.book, name)
}

// HasScene reports whether a live scene is registered under name.
func (r *Registry) HasScene(name string) bool {
	_, ok := r.book[name]
	return ok
}

// SceneNames returns the live scene names, sorted.
func (r *Registry) SceneNames() []string {
	out := make([]string, 0, len(r.book))
	for name := range r.book {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SceneLayers returns the UI layer ids registered under name in draw order.
func (r *Registry) SceneLayers(name string) []LayerID {
	ids := make([]LayerID, 0, len(r.book[name]))
	for id := range r.book[name] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return uiLess(ids[i], ids[j]) })
	return ids
}

// Entities returns the entities of a layer. The slice is owned by the
// registry and must not be modified.
func (r *Registry) Entities(id LayerID) []Entity {
	if id.IsUI() {
		return r.ui[id]
	}
	if id.Kind < persistentCount {
		return r.persistent[id.Kind]
	}
	return nil
}

// Len returns the number of entities in a layer.
func (r *Registry) Len(id LayerID) int { return len(r.Entities(id)) }

// Total returns the number of entities across all layers.
func (r *Registry) Total() int {
	n := 0
	for _, es := range r.persistent {
		n += len(es)
	}
	for _, es := range r.ui {
		n += len(es)
	}
	return n
}

// Order returns the draw order for this frame: persistent layers in
// declaration order, then UI layers sorted by (rank, sublayer, name) so
// higher ranks draw on top. It is recomputed on every call.
func (r *Registry) Order() []LayerID {
	out := make([]LayerID, 0, int(persistentCount)+len(r.ui))
	for _, k := range PersistentLayers() {
		out = append(out, Persistent(k))
	}
	ui := make([]LayerID, 0, len(r.ui))
	for id := range r.ui {
		ui = append(ui, id)
	}
	sort.Slice(ui, func(i, j int) bool { return uiLess(ui[i], ui[j]) })
	return append(out, ui...)
}

// sceneBook remembers which UI layer ids were produced under each scene name.
type sceneBook map[string]map[LayerID]struct{}

func (b sceneBook) record(id LayerID) {
	keys, ok := b[id.Scene]
	if !ok {
		keys = make(map[LayerID]struct{})
		b[id.Scene] = keys
	}
	keys[id] = struct{}{}
}
