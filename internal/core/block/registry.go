package block

// Props is the wire-level per-block property bag supplied by the host
// in the init message's blockColors/BLOCK_TYPES tables. A named block
// with no Props entry is built opaque, white and untextured; a Props
// entry's fields are taken as given, except that an empty Class means
// solid.
type Props struct {
	Color          Color
	Transparency   float64
	SeeThrough     bool
	FaceTextures   map[string]string // face name -> texture key, e.g. "top": "grass_top"
	DefaultTexture string
	Class          string // "solid" | "mesh" | "structure", defaults to "solid"
}

var faceNames = [faceCount]string{"front", "back", "right", "left", "top", "bottom"}

func parseClass(s string) RenderClass {
	switch s {
	case "mesh":
		return ClassMesh
	case "structure":
		return ClassStructure
	default:
		return ClassSolid
	}
}

// Catalogue is the dense, id-indexed lookup table built once per
// worker from the host's init message. Queries are O(1) slice
// indexing; ids outside the built range return neutralDefault (§4.2).
type Catalogue struct {
	defs   []Def
	byName map[string]ID
}

// NewCatalogue builds a Catalogue from a name->id map and a matching
// name->Props table. Air (id 0) is always present even if the host
// omits it from names.
func NewCatalogue(names map[string]ID, props map[string]Props) *Catalogue {
	maxID := AirID
	for _, id := range names {
		if id > maxID {
			maxID = id
		}
	}

	c := &Catalogue{
		defs:   make([]Def, maxID+1),
		byName: make(map[string]ID, len(names)+1),
	}
	for i := range c.defs {
		c.defs[i] = neutralDefault
	}
	c.defs[AirID] = Def{
		Name:         "air",
		Transparency: 1,
		SeeThrough:   true,
		Color:        Color{0, 0, 0},
		Class:        ClassSolid,
	}
	c.byName["air"] = AirID

	for name, id := range names {
		if id == AirID {
			continue
		}
		def := Def{
			Name:         name,
			Transparency: 0,
			SeeThrough:   false,
			Color:        Color{1, 1, 1},
			Class:        ClassSolid,
		}
		if p, ok := props[name]; ok {
			def.Color = p.Color
			def.Transparency = p.Transparency
			def.SeeThrough = p.SeeThrough
			def.DefaultTexture = p.DefaultTexture
			def.Class = parseClass(p.Class)
			for i, fn := range faceNames {
				if tex, ok := p.FaceTextures[fn]; ok {
					def.FaceTextures[i] = tex
				}
			}
		}
		c.defs[id] = def
		c.byName[name] = id
	}

	return c
}

// Get returns the definition for id, or the neutral default if id is
// unknown to this catalogue.
func (c *Catalogue) Get(id ID) Def {
	if int(id) < 0 || int(id) >= len(c.defs) {
		return neutralDefault
	}
	return c.defs[id]
}

// IDByName resolves a block name to its id. Returns (0, false) when
// the name is not registered.
func (c *Catalogue) IDByName(name string) (ID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// IsTransparent reports whether id's block is transparent (id 0 always
// is).
func (c *Catalogue) IsTransparent(id ID) bool {
	return c.Get(id).Transparency > 0
}

// IsAir reports whether id is the reserved air id.
func (c *Catalogue) IsAir(id ID) bool {
	return id == AirID
}

// Len returns the number of id slots the catalogue was built with.
func (c *Catalogue) Len() int {
	return len(c.defs)
}
