package projectile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stealth/internal/world"
)

// corridor puts the player at (1,2) facing right in a 12x5 walled room.
func corridor(t *testing.T, stageID, ammo int, rules world.Rules, walls ...int) *world.World {
	t.Helper()

	grid := world.NewGrid([]string{
		"############",
		"#..........#",
		"#..........#",
		"#..........#",
		"############",
	})
	for _, x := range walls {
		grid.Set(x, 2, world.TileWall)
	}
	w := world.New(stageID, grid, world.Point{X: 1, Y: 2}, world.Point{X: 10, Y: 3}, ammo, rules)
	w.Player.Facing = world.FacingRight
	return w
}

func TestFireTwiceWithOneAmmo(t *testing.T) {
	w := corridor(t, 1, 1, world.DefaultRules())

	assert.True(t, Fire(w))
	assert.False(t, Fire(w))
	assert.Equal(t, 0, w.Ammo)
	assert.Equal(t, 1, w.ActiveProjectiles())
}

func TestFireFullPoolKeepsAmmo(t *testing.T) {
	rules := world.DefaultRules()
	rules.ProjectileCapacity = 2
	w := corridor(t, 1, 5, rules)

	require.Equal(t, Fired, Spawn(w))
	require.Equal(t, Fired, Spawn(w))
	assert.Equal(t, PoolFull, Spawn(w))
	assert.Equal(t, 3, w.Ammo, "a dropped request must not charge ammo")
	assert.Len(t, w.Projectiles, 2)
}

func TestFireReusesInactiveSlot(t *testing.T) {
	rules := world.DefaultRules()
	rules.ProjectileCapacity = 2
	w := corridor(t, 1, 5, rules)

	require.True(t, Fire(w))
	require.True(t, Fire(w))
	w.Projectiles[0].Active = false
	w.Projectiles[0].Distance = 64

	require.True(t, Fire(w))
	assert.Len(t, w.Projectiles, 2)
	assert.True(t, w.Projectiles[0].Active)
	assert.Zero(t, w.Projectiles[0].Distance, "a reused slot starts fresh")
}

func TestFireNeedsFacingAndAmmo(t *testing.T) {
	w := corridor(t, 1, 2, world.DefaultRules())
	w.Player.Facing = world.FacingNone

	assert.Equal(t, NoFacing, Spawn(w))
	assert.Equal(t, 2, w.Ammo)
	assert.Empty(t, w.Projectiles)

	w.Player.Facing = world.FacingUp
	w.Ammo = 0
	assert.Equal(t, NoAmmo, Spawn(w))
	assert.Empty(t, w.Projectiles)
}

func TestFireStartsAtPlayer(t *testing.T) {
	cases := []struct {
		facing world.Facing
		dx, dy int
	}{
		{world.FacingUp, 0, -1},
		{world.FacingDown, 0, 1},
		{world.FacingLeft, -1, 0},
		{world.FacingRight, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.facing.String(), func(t *testing.T) {
			w := corridor(t, 1, 1, world.DefaultRules())
			w.Player.Facing = tc.facing

			require.True(t, Fire(w))
			p := w.Projectiles[0]
			assert.Equal(t, w.Player.WorldX, p.WorldX)
			assert.Equal(t, w.Player.WorldY, p.WorldY)
			assert.Equal(t, tc.dx, p.DirX)
			assert.Equal(t, tc.dy, p.DirY)
		})
	}
}

func TestAdvanceExpiresAtRange(t *testing.T) {
	w := corridor(t, 1, 1, world.DefaultRules())
	sub := w.Rules.SubunitsPerTile
	require.True(t, Fire(w))

	for i := 1; i < w.Rules.ProjectileRange; i++ {
		r := Advance(w)
		require.Equal(t, 1, r.Moved, "tick %d", i)
	}
	assert.Equal(t, (1+w.Rules.ProjectileRange-1)*sub, w.Projectiles[0].WorldX)

	r := Advance(w)
	assert.Equal(t, 1, r.Expired)
	assert.False(t, w.Projectiles[0].Active, "open floor ahead does not extend the range")
}

func TestExpiryBeatsWall(t *testing.T) {
	rules := world.DefaultRules()
	w := corridor(t, 1, 1, rules, 1+rules.ProjectileRange)
	require.True(t, Fire(w))

	var last Report
	for range rules.ProjectileRange {
		last = Advance(w)
	}
	assert.Equal(t, 1, last.Expired)
	assert.Zero(t, last.Walls)
}

func TestAdvanceStopsAtWall(t *testing.T) {
	w := corridor(t, 1, 1, world.DefaultRules(), 4)
	sub := w.Rules.SubunitsPerTile
	require.True(t, Fire(w))

	Advance(w)
	Advance(w)
	r := Advance(w)

	assert.Equal(t, 1, r.Walls)
	assert.False(t, w.Projectiles[0].Active)
	assert.Equal(t, 3*sub, w.Projectiles[0].WorldX, "a blocked projectile does not move")
}

func TestAdvanceDamagesObstacle(t *testing.T) {
	w := corridor(t, 1, 2, world.DefaultRules())
	w.AddObstacle(3, 2, 2, &world.Linear{Axis: world.AxisVertical, Dir: 1})
	require.True(t, Fire(w))

	Advance(w)
	r := Advance(w)
	assert.Equal(t, 1, r.Hits)
	assert.Zero(t, r.Kills)
	assert.Equal(t, 1, w.Obstacles[0].HP)
	assert.False(t, w.Projectiles[0].Active)

	require.True(t, Fire(w))
	Advance(w)
	r = Advance(w)
	assert.Equal(t, 1, r.Kills)
	assert.False(t, w.Obstacles[0].Active)
}

func TestImmunePursuerPassThrough(t *testing.T) {
	w := corridor(t, 1, 1, world.DefaultRules())
	sub := w.Rules.SubunitsPerTile
	w.AddObstacle(3, 2, 1, &world.Pursuer{Dir: 1, SightRange: 1})
	require.True(t, Fire(w))

	Advance(w)
	r := Advance(w)

	assert.Equal(t, 1, r.Immune)
	assert.Equal(t, 1, r.Moved)
	assert.Equal(t, 1, w.Obstacles[0].HP)
	assert.True(t, w.Projectiles[0].Active)
	assert.Equal(t, 3*sub, w.Projectiles[0].WorldX)
}

func TestImmunePursuerAbsorb(t *testing.T) {
	rules := world.DefaultRules()
	rules.ImmuneHit = world.ImmuneAbsorb
	w := corridor(t, 1, 1, rules)
	w.AddObstacle(3, 2, 1, &world.Pursuer{Dir: 1, SightRange: 1})
	require.True(t, Fire(w))

	Advance(w)
	r := Advance(w)

	assert.Equal(t, 1, r.Absorbed)
	assert.Equal(t, 1, w.Obstacles[0].HP)
	assert.False(t, w.Projectiles[0].Active)
}

func TestPursuerDamageableOnFinalStage(t *testing.T) {
	rules := world.DefaultRules()
	w := corridor(t, rules.FinalStage, 1, rules)
	w.AddObstacle(3, 2, 1, &world.Pursuer{Dir: 1, SightRange: 1})
	require.True(t, Fire(w))

	Advance(w)
	r := Advance(w)

	assert.Equal(t, 1, r.Kills)
	assert.False(t, w.Obstacles[0].Active)
	assert.False(t, w.Projectiles[0].Active)
}
