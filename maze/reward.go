package maze

// CollectibleType names a bonus item a player can pick up.
type CollectibleType string

const (
	Star    CollectibleType = "star"
	Crystal CollectibleType = "crystal"
	Heart   CollectibleType = "heart"

	maxPlacementAttempts = 20
	levelBonusPerLevel   = 50
)

var (
	collectibleTypes = []CollectibleType{Star, Crystal, Heart}

	points = map[CollectibleType]int{
		Star:    10,
		Crystal: 15,
		Heart:   20,
	}
)

// Collectible is a bonus item placed on an open cell.
type Collectible struct {
	X         int             `json:"x"`
	Y         int             `json:"y"`
	Type      CollectibleType `json:"type"`
	Collected bool            `json:"collected"`
}

// Position returns the cell the collectible sits on.
func (c Collectible) Position() Position {
	return Position{X: c.X, Y: c.Y}
}

// CalculatePoints returns the fixed point value of a collectible type.
// Unknown types are worth nothing.
func CalculatePoints(t CollectibleType) int {
	return points[t]
}

// LevelBonus returns the points awarded for completing the given level.
func LevelBonus(level int) int {
	return levelBonusPerLevel * level
}

// region is an inclusive rectangle of cells.
type region struct {
	minX, maxX, minY, maxY int
}

// quadrants splits the interior of a size×size maze into four regions, each
// inset two cells from the edges so the start and goal blocks stay clear.
func quadrants(size int) []region {
	half := size / 2
	return []region{
		{minX: 2, maxX: half - 1, minY: 2, maxY: half - 1},
		{minX: half, maxX: size - 3, minY: 2, maxY: half - 1},
		{minX: 2, maxX: half - 1, minY: half, maxY: size - 3},
		{minX: half, maxX: size - 3, minY: half, maxY: size - 3},
	}
}

// GenerateCollectibles places collectibles on m using the package default
// generator.
func GenerateCollectibles(m *Maze) []Collectible {
	return defaultGenerator.Collectibles(m)
}

// Collectibles tries to place one collectible per quadrant region. Each region
// gets maxPlacementAttempts random picks; a region whose picks all land on
// walls or taken cells stays empty.
func (g *Generator) Collectibles(m *Maze) []Collectible {
	if m == nil || m.Size == 0 {
		return []Collectible{}
	}

	g.Lock()
	defer g.Unlock()

	items := make([]Collectible, 0, 4)
	taken := make(map[Position]struct{})
	for _, r := range quadrants(m.Size) {
		if r.maxX < r.minX || r.maxY < r.minY {
			continue
		}

		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			p := Position{
				X: g.rng.Intn(r.maxX-r.minX+1) + r.minX,
				Y: g.rng.Intn(r.maxY-r.minY+1) + r.minY,
			}
			if _, ok := taken[p]; ok || !m.IsOpen(p) {
				continue
			}

			taken[p] = struct{}{}
			items = append(items, Collectible{
				X:    p.X,
				Y:    p.Y,
				Type: collectibleTypes[g.rng.Intn(len(collectibleTypes))],
			})
			break
		}
	}

	return items
}
