package starvine

import "math"

// MovementKind is one of the seven character movement behaviors.
type MovementKind uint8

const (
	MoveLinear MovementKind = iota
	MoveWander
	MoveZigzag
	MoveSpiral
	MoveOrbit
	MoveFlicker
	MoveFollow
	movementKindCount
)

var movementNames = [...]string{"linear", "wander", "zigzag", "spiral", "orbit", "flicker", "follow"}

func (k MovementKind) String() string {
	if int(k) < len(movementNames) {
		return movementNames[k]
	}
	return "unknown"
}

// movement steers a character before it advances. Each behavior keeps only
// the state it needs.
type movement interface {
	Kind() MovementKind
	steer(ctx *Context, c *Character)
}

// newMovement builds the behavior for kind with its initial state.
func newMovement(ctx *Context, kind MovementKind) movement {
	switch kind {
	case MoveWander:
		return &wanderMove{}
	case MoveZigzag:
		return &zigzagMove{}
	case MoveSpiral:
		return &spiralMove{angle: ctx.Rand.Float64() * 2 * math.Pi}
	case MoveOrbit:
		return &orbitMove{angle: ctx.Rand.Float64() * 2 * math.Pi}
	case MoveFlicker:
		return &flickerMove{}
	case MoveFollow:
		return &followMove{targetDist: followDist.Sample(ctx.Rand)}
	default:
		return &linearMove{}
	}
}

// Movement tuning.
const (
	wanderNoise    = 0.2
	wanderMaxSpeed = 4
	zigzagPeriod   = 60
	zigzagSpread   = 6
	spiralSpin     = 0.02
	spiralGrowth   = 0.1
	spiralMaxR     = 100
	spiralSpeed    = 2
	orbitSpin      = 0.01
	orbitSteer     = 0.05
	orbitReach     = 0.3
	flickerChance  = 0.01
	flickerJump    = 200
	followAccel    = 0.1
	followDamp     = 0.95
	followMaxSpeed = 5
	speedCapDamp   = 0.9
)

var followDist = Range{100, 300}

type linearMove struct{}

func (*linearMove) Kind() MovementKind               { return MoveLinear }
func (*linearMove) steer(ctx *Context, c *Character) {}

// wanderMove random-walks the velocity, damping it above wanderMaxSpeed.
type wanderMove struct{}

func (*wanderMove) Kind() MovementKind { return MoveWander }

func (*wanderMove) steer(ctx *Context, c *Character) {
	c.Vel.X += ctx.signed(wanderNoise)
	c.Vel.Y += ctx.signed(wanderNoise)
	if c.Vel.Len() > wanderMaxSpeed {
		c.Vel = c.Vel.Scale(speedCapDamp)
	}
}

// zigzagMove picks a fresh random velocity every zigzagPeriod frames.
type zigzagMove struct {
	turnTimer int
}

func (*zigzagMove) Kind() MovementKind { return MoveZigzag }

func (m *zigzagMove) steer(ctx *Context, c *Character) {
	m.turnTimer++
	if m.turnTimer > zigzagPeriod {
		c.Vel = Vec2{ctx.signed(zigzagSpread), ctx.signed(zigzagSpread)}
		m.turnTimer = 0
	}
}

// spiralMove circles with a steadily turning heading.
type spiralMove struct {
	angle  float64
	radius float64
}

func (*spiralMove) Kind() MovementKind { return MoveSpiral }

func (m *spiralMove) steer(ctx *Context, c *Character) {
	m.angle += spiralSpin * ctx.Speed
	m.radius += spiralGrowth * ctx.Speed
	s, co := math.Sincos(m.angle)
	c.Vel = Vec2{co * spiralSpeed, s * spiralSpeed}
	if m.radius > spiralMaxR {
		m.radius = 0
	}
}

// orbitMove chases a point travelling an ellipse around the canvas center.
type orbitMove struct {
	angle float64
}

func (*orbitMove) Kind() MovementKind { return MoveOrbit }

func (m *orbitMove) steer(ctx *Context, c *Character) {
	m.angle += orbitSpin * ctx.Speed
	s, co := math.Sincos(m.angle)
	tx := ctx.Width/2 + co*ctx.Width*orbitReach
	ty := ctx.Height/2 + s*ctx.Height*orbitReach
	c.Vel = Vec2{(tx - c.Pos.X) * orbitSteer, (ty - c.Pos.Y) * orbitSteer}
}

// flickerMove occasionally teleports the character.
type flickerMove struct{}

func (*flickerMove) Kind() MovementKind { return MoveFlicker }

func (*flickerMove) steer(ctx *Context, c *Character) {
	if ctx.chance(flickerChance) {
		c.Pos.X += ctx.signed(flickerJump)
		c.Pos.Y += ctx.signed(flickerJump)
	}
}

// followMove accelerates toward the live pointer until within targetDist.
type followMove struct {
	targetDist float64
}

func (*followMove) Kind() MovementKind { return MoveFollow }

func (m *followMove) steer(ctx *Context, c *Character) {
	d := ctx.Pointer.Sub(Vec2{c.Pos.X + c.Size/2, c.Pos.Y + c.Size/2})
	dist := d.Len()
	if dist > m.targetDist {
		c.Vel = c.Vel.Add(d.Scale(followAccel / dist))
	} else {
		c.Vel = c.Vel.Scale(followDamp)
	}
	if c.Vel.Len() > followMaxSpeed {
		c.Vel = c.Vel.Scale(speedCapDamp)
	}
}
