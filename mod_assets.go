package gekkoedit

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/gekko-editor/geom/core"
)

type AssetId string

// AssetServer owns the geometry shared between entities. Loading identical buffers twice
// returns the same asset, so instanced entities share one *core.Geometry.
type AssetServer struct {
	geometries map[AssetId]*core.Geometry
	byHash     map[uint64][]AssetId
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(NewAssetServer())
}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		geometries: make(map[AssetId]*core.Geometry),
		byHash:     make(map[uint64][]AssetId),
	}
}

// LoadGeometry validates the buffers and registers them, reusing an existing asset with
// identical content.
func (server *AssetServer) LoadGeometry(positions, normals []float32, indices []uint32) (AssetId, error) {
	g, err := core.NewGeometry(positions, normals, indices)
	if err != nil {
		return "", fmt.Errorf("load geometry: %w", err)
	}
	return server.AddGeometry(g), nil
}

// AddGeometry registers g, or returns the id of an already registered equal geometry.
func (server *AssetServer) AddGeometry(g *core.Geometry) AssetId {
	h := geometryHash(g)
	for _, id := range server.byHash[h] {
		if sameGeometry(server.geometries[id], g) {
			return id
		}
	}

	id := makeAssetId()
	server.geometries[id] = g
	server.byHash[h] = append(server.byHash[h], id)
	return id
}

// LoadBox registers an axis-aligned box centered at the origin.
func (server *AssetServer) LoadBox(halfExtents mgl32.Vec3) AssetId {
	return server.AddGeometry(core.NewBox(halfExtents))
}

func (server *AssetServer) Geometry(id AssetId) (*core.Geometry, bool) {
	g, ok := server.geometries[id]
	return g, ok
}

func (server *AssetServer) GeometryCount() int {
	return len(server.geometries)
}

func geometryHash(g *core.Geometry) uint64 {
	d := xxhash.New()
	var b [4]byte
	writeFloats := func(fs []float32) {
		binary.LittleEndian.PutUint32(b[:], uint32(len(fs)))
		_, _ = d.Write(b[:])
		for _, f := range fs {
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
			_, _ = d.Write(b[:])
		}
	}
	writeFloats(g.Positions())
	writeFloats(g.Normals())
	binary.LittleEndian.PutUint32(b[:], uint32(len(g.Indices())))
	_, _ = d.Write(b[:])
	for _, idx := range g.Indices() {
		binary.LittleEndian.PutUint32(b[:], idx)
		_, _ = d.Write(b[:])
	}
	return d.Sum64()
}

func sameGeometry(a, b *core.Geometry) bool {
	return slices.Equal(a.Positions(), b.Positions()) &&
		slices.Equal(a.Normals(), b.Normals()) &&
		slices.Equal(a.Indices(), b.Indices())
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
