package physics

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// DefaultHitSpeedThreshold is the minimum approach speed reported as a HitEvent
const DefaultHitSpeedThreshold = 1.0

// linearSlop keeps resting contacts touching after position correction
const linearSlop = 0.005

// MemWorld is a small in-memory Engine with generation-indexed handles
// Shapes live in a resolv grid space, limited to circles and axis-aligned boxes;
// joints are revolute followers where body B is pinned to body A and spun by the motor
// Not safe for concurrent use
type MemWorld struct {
	bodies     []bodySlot
	freeBodies []uint32
	shapes     []shapeSlot
	freeShapes []uint32
	joints     []jointSlot
	freeJoints []uint32

	space *resolv.Space

	touching map[touchKey]struct{}
	sensing  map[SensorEvent]struct{}
	impacts  map[touchKey]float64 // Approach speeds resolved during the current step

	contact ContactEvents
	sensor  SensorEvents

	// End events produced by destruction, published with the next Step
	pendingContactEnd []TouchEvent
	pendingSensorEnd  []SensorEvent

	HitSpeedThreshold float64
}

type bodySlot struct {
	gen   uint32
	alive bool

	typ            BodyType
	pos            vmath.Vec2
	angle          float64
	vel            vmath.Vec2
	angVel         float64
	linDamping     float64
	angDamping     float64
	sleepThreshold float64
	mass           float64
	awake          bool

	shapes []core.ShapeID
	joints []core.JointID
	driver core.JointID // Joint pinning this body as B, null if free
}

type shapeSlot struct {
	gen   uint32
	alive bool
	body  core.BodyID
	def   ShapeDef
	obj   *resolv.Object
}

type jointSlot struct {
	gen   uint32
	alive bool
	def   JointDef
}

type touchKey struct {
	a, b core.ShapeID
}

func makeTouchKey(a, b core.ShapeID) touchKey {
	if a > b {
		a, b = b, a
	}
	return touchKey{a: a, b: b}
}

// NewMemWorld creates an empty world
func NewMemWorld() *MemWorld {
	return &MemWorld{
		space:             newSpace(),
		touching:          make(map[touchKey]struct{}),
		sensing:           make(map[SensorEvent]struct{}),
		impacts:           make(map[touchKey]float64),
		HitSpeedThreshold: DefaultHitSpeedThreshold,
	}
}

// === Handle arenas ===

func allocSlot(free *[]uint32, n int) (index uint32, reuse bool) {
	if len(*free) > 0 {
		last := len(*free) - 1
		index = (*free)[last]
		*free = (*free)[:last]
		return index, true
	}
	return uint32(n), false
}

func (w *MemWorld) body(id core.BodyID) *bodySlot {
	idx, gen := core.UnpackHandle(uint64(id))
	if int(idx) >= len(w.bodies) {
		return nil
	}
	b := &w.bodies[idx]
	if !b.alive || b.gen != gen {
		return nil
	}
	return b
}

func (w *MemWorld) shape(id core.ShapeID) *shapeSlot {
	idx, gen := core.UnpackHandle(uint64(id))
	if int(idx) >= len(w.shapes) {
		return nil
	}
	s := &w.shapes[idx]
	if !s.alive || s.gen != gen {
		return nil
	}
	return s
}

func (w *MemWorld) joint(id core.JointID) *jointSlot {
	idx, gen := core.UnpackHandle(uint64(id))
	if int(idx) >= len(w.joints) {
		return nil
	}
	j := &w.joints[idx]
	if !j.alive || j.gen != gen {
		return nil
	}
	return j
}

// === Bodies ===

func (w *MemWorld) CreateBody(def BodyDef) core.BodyID {
	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}
	slot := bodySlot{
		alive:          true,
		typ:            def.Type,
		pos:            def.Position,
		angle:          def.Angle,
		vel:            def.LinearVelocity,
		angVel:         def.AngularVelocity,
		linDamping:     def.LinearDamping,
		angDamping:     def.AngularDamping,
		sleepThreshold: def.SleepThreshold,
		mass:           mass,
		awake:          true,
	}

	idx, reuse := allocSlot(&w.freeBodies, len(w.bodies))
	if reuse {
		slot.gen = w.bodies[idx].gen
		w.bodies[idx] = slot
	} else {
		slot.gen = 1
		w.bodies = append(w.bodies, slot)
	}
	return core.BodyID(core.PackHandle(idx, slot.gen))
}

// DestroyBody removes the body, its shapes and every joint attached to it
// Touching pairs are reported as end events on the next Step
func (w *MemWorld) DestroyBody(id core.BodyID) {
	b := w.body(id)
	if b == nil {
		return
	}

	for _, jid := range append([]core.JointID(nil), b.joints...) {
		w.DestroyJoint(jid)
	}

	for _, sid := range b.shapes {
		w.releaseShape(sid, true)
	}

	idx := id.Index()
	b.alive = false
	b.gen++
	b.shapes = nil
	b.joints = nil
	b.driver = core.NullJoint
	w.freeBodies = append(w.freeBodies, idx)
}

func (w *MemWorld) releaseShape(sid core.ShapeID, reportEnd bool) {
	s := w.shape(sid)
	if s == nil {
		return
	}

	var ended []touchKey
	for key := range w.touching {
		if key.a == sid || key.b == sid {
			ended = append(ended, key)
		}
	}
	sort.Slice(ended, func(i, j int) bool {
		if ended[i].a != ended[j].a {
			return ended[i].a < ended[j].a
		}
		return ended[i].b < ended[j].b
	})
	for _, key := range ended {
		delete(w.touching, key)
		if reportEnd {
			w.pendingContactEnd = append(w.pendingContactEnd, TouchEvent{ShapeA: key.a, ShapeB: key.b})
		}
	}

	var sensed []SensorEvent
	for key := range w.sensing {
		if key.SensorShape == sid || key.VisitorShape == sid {
			sensed = append(sensed, key)
		}
	}
	sortSensorEvents(sensed)
	for _, key := range sensed {
		delete(w.sensing, key)
		if reportEnd {
			w.pendingSensorEnd = append(w.pendingSensorEnd, key)
		}
	}

	w.space.Remove(s.obj)
	idx, _ := core.UnpackHandle(uint64(sid))
	s.alive = false
	s.gen++
	s.obj = nil
	w.freeShapes = append(w.freeShapes, idx)
}

func (w *MemWorld) BodyValid(id core.BodyID) bool {
	return w.body(id) != nil
}

func (w *MemWorld) BodyShapes(id core.BodyID) []core.ShapeID {
	b := w.body(id)
	if b == nil {
		return nil
	}
	out := make([]core.ShapeID, len(b.shapes))
	copy(out, b.shapes)
	return out
}

// BodyCount returns the number of live bodies
func (w *MemWorld) BodyCount() int {
	n := 0
	for i := range w.bodies {
		if w.bodies[i].alive {
			n++
		}
	}
	return n
}

// Reset destroys everything without reporting events, as an external world reset would
func (w *MemWorld) Reset() {
	for i := range w.bodies {
		if w.bodies[i].alive {
			w.bodies[i].alive = false
			w.bodies[i].gen++
			w.bodies[i].shapes = nil
			w.bodies[i].joints = nil
			w.freeBodies = append(w.freeBodies, uint32(i))
		}
	}
	for i := range w.shapes {
		if w.shapes[i].alive {
			w.shapes[i].alive = false
			w.shapes[i].gen++
			w.shapes[i].obj = nil
			w.freeShapes = append(w.freeShapes, uint32(i))
		}
	}
	for i := range w.joints {
		if w.joints[i].alive {
			w.joints[i].alive = false
			w.joints[i].gen++
			w.freeJoints = append(w.freeJoints, uint32(i))
		}
	}
	w.space = newSpace()
	clear(w.touching)
	clear(w.sensing)
	clear(w.impacts)
	w.pendingContactEnd = nil
	w.pendingSensorEnd = nil
	w.contact = ContactEvents{}
	w.sensor = SensorEvents{}
}

// === Shapes ===

func (w *MemWorld) CreateShape(body core.BodyID, def ShapeDef) core.ShapeID {
	b := w.body(body)
	if b == nil {
		return core.NullShape
	}
	slot := shapeSlot{alive: true, body: body, def: def}

	idx, reuse := allocSlot(&w.freeShapes, len(w.shapes))
	if reuse {
		slot.gen = w.shapes[idx].gen
		w.shapes[idx] = slot
	} else {
		slot.gen = 1
		w.shapes = append(w.shapes, slot)
	}
	id := core.ShapeID(core.PackHandle(idx, slot.gen))
	b.shapes = append(b.shapes, id)

	s := &w.shapes[idx]
	s.obj = newSpaceObject(id, def)
	w.space.Add(s.obj)
	w.sync(s)
	return id
}

func (w *MemWorld) ShapeValid(id core.ShapeID) bool {
	return w.shape(id) != nil
}

func (w *MemWorld) ShapeBody(id core.ShapeID) core.BodyID {
	if s := w.shape(id); s != nil {
		return s.body
	}
	return core.NullBody
}

func (w *MemWorld) ShapeFilter(id core.ShapeID) Filter {
	if s := w.shape(id); s != nil {
		return s.def.Filter
	}
	return Filter{}
}

func (w *MemWorld) ShapeColor(id core.ShapeID) core.RGB {
	if s := w.shape(id); s != nil {
		return s.def.Color
	}
	return core.RGBBlack
}

func (w *MemWorld) SetShapeColor(id core.ShapeID, c core.RGB) {
	if s := w.shape(id); s != nil {
		s.def.Color = c
	}
}

func (w *MemWorld) ShapeRadius(id core.ShapeID) float64 {
	if s := w.shape(id); s != nil {
		return s.def.Radius
	}
	return 0
}

func (w *MemWorld) SetShapeRadius(id core.ShapeID, r float64) {
	s := w.shape(id)
	if s == nil || s.def.Kind != ShapeCircle {
		return
	}
	s.def.Radius = r
	// Grid bounds follow the radius, so the object is rebuilt
	w.space.Remove(s.obj)
	s.obj = newSpaceObject(id, s.def)
	w.space.Add(s.obj)
	w.sync(s)
}

// === Joints ===

func (w *MemWorld) CreateRevoluteJoint(def JointDef) core.JointID {
	a, b := w.body(def.BodyA), w.body(def.BodyB)
	if a == nil || b == nil {
		return core.NullJoint
	}
	slot := jointSlot{alive: true, def: def}

	idx, reuse := allocSlot(&w.freeJoints, len(w.joints))
	if reuse {
		slot.gen = w.joints[idx].gen
		w.joints[idx] = slot
	} else {
		slot.gen = 1
		w.joints = append(w.joints, slot)
	}
	id := core.JointID(core.PackHandle(idx, slot.gen))

	a.joints = append(a.joints, id)
	b.joints = append(b.joints, id)
	b.driver = id
	w.pinFollower(&w.joints[idx])
	return id
}

func (w *MemWorld) DestroyJoint(id core.JointID) {
	j := w.joint(id)
	if j == nil {
		return
	}
	for _, bid := range []core.BodyID{j.def.BodyA, j.def.BodyB} {
		b := w.body(bid)
		if b == nil {
			continue
		}
		for i, jid := range b.joints {
			if jid == id {
				b.joints = append(b.joints[:i], b.joints[i+1:]...)
				break
			}
		}
		if b.driver == id {
			b.driver = core.NullJoint
		}
	}
	idx, _ := core.UnpackHandle(uint64(id))
	j.alive = false
	j.gen++
	w.freeJoints = append(w.freeJoints, idx)
}

func (w *MemWorld) JointValid(id core.JointID) bool {
	return w.joint(id) != nil
}

func (w *MemWorld) Motor(id core.JointID) MotorState {
	if j := w.joint(id); j != nil {
		return j.def.Motor
	}
	return MotorState{}
}

func (w *MemWorld) SetMotor(id core.JointID, m MotorState) {
	if j := w.joint(id); j != nil {
		j.def.Motor = m
	}
}

// === Body state ===

func (w *MemWorld) Position(id core.BodyID) vmath.Vec2 {
	if b := w.body(id); b != nil {
		return b.pos
	}
	return vmath.Vec2{}
}

func (w *MemWorld) Angle(id core.BodyID) float64 {
	if b := w.body(id); b != nil {
		return b.angle
	}
	return 0
}

func (w *MemWorld) SetTransform(id core.BodyID, pos vmath.Vec2, angle float64) {
	if b := w.body(id); b != nil {
		b.pos = pos
		b.angle = angle
	}
}

func (w *MemWorld) LinearVelocity(id core.BodyID) vmath.Vec2 {
	if b := w.body(id); b != nil {
		return b.vel
	}
	return vmath.Vec2{}
}

func (w *MemWorld) SetLinearVelocity(id core.BodyID, v vmath.Vec2) {
	if b := w.body(id); b != nil && b.typ != BodyStatic {
		b.vel = v
		if !v.IsZero() {
			b.awake = true
		}
	}
}

func (w *MemWorld) AngularVelocity(id core.BodyID) float64 {
	if b := w.body(id); b != nil {
		return b.angVel
	}
	return 0
}

func (w *MemWorld) SetAngularVelocity(id core.BodyID, av float64) {
	if b := w.body(id); b != nil && b.typ != BodyStatic {
		b.angVel = av
		if av != 0 {
			b.awake = true
		}
	}
}

func (w *MemWorld) ApplyLinearImpulse(id core.BodyID, impulse vmath.Vec2) {
	if b := w.body(id); b != nil && b.typ == BodyDynamic {
		b.vel = b.vel.Add(impulse.Scale(1 / b.mass))
		b.awake = true
	}
}

func (w *MemWorld) SleepThreshold(id core.BodyID) float64 {
	if b := w.body(id); b != nil {
		return b.sleepThreshold
	}
	return 0
}

func (w *MemWorld) SetSleepThreshold(id core.BodyID, threshold float64) {
	if b := w.body(id); b != nil {
		b.sleepThreshold = threshold
	}
}

func (w *MemWorld) IsAwake(id core.BodyID) bool {
	if b := w.body(id); b != nil {
		return b.awake
	}
	return false
}

func (w *MemWorld) SetAwake(id core.BodyID, awake bool) {
	if b := w.body(id); b != nil {
		b.awake = awake
	}
}

// === Geometry ===

// Collision space grid; world coordinates are shifted by spaceOrigin so the arena sits mid-grid
const (
	spaceExtent = 1024
	spaceCell   = 8
	spaceOrigin = spaceExtent / 2
)

func newSpace() *resolv.Space {
	return resolv.NewSpace(spaceExtent, spaceExtent, spaceCell, spaceCell)
}

type shapeGeom struct {
	kind   ShapeKind
	center vmath.Vec2
	half   vmath.Vec2
}

func (w *MemWorld) geom(s *shapeSlot) shapeGeom {
	b := w.body(s.body)
	if b == nil {
		return shapeGeom{}
	}
	if s.def.Kind == ShapeBox {
		return shapeGeom{kind: ShapeBox, center: b.pos.Add(s.def.Offset), half: s.def.HalfExtents}
	}
	r := s.def.Radius
	return shapeGeom{kind: ShapeCircle, center: b.pos.Add(s.def.Offset.Rotate(b.angle)), half: vmath.V(r, r)}
}

// newSpaceObject builds the collision object for a shape; boxes stay axis-aligned
func newSpaceObject(id core.ShapeID, def ShapeDef) *resolv.Object {
	var shape resolv.IShape
	half := def.HalfExtents
	if def.Kind == ShapeCircle {
		half = vmath.V(def.Radius, def.Radius)
		shape = resolv.NewCircle(0, 0, def.Radius)
	} else {
		shape = resolv.NewRectangle(0, 0, 2*half.X, 2*half.Y)
	}
	obj := resolv.NewObject(0, 0, 2*half.X, 2*half.Y)
	obj.Data = id
	obj.SetShape(shape)
	return obj
}

// place moves the collision shape onto the body transform without touching grid cells
func place(s *shapeSlot, g shapeGeom) {
	if g.kind == ShapeCircle {
		s.obj.Shape.SetPosition(g.center.X+spaceOrigin, g.center.Y+spaceOrigin)
		return
	}
	s.obj.Shape.SetPosition(g.center.X-g.half.X+spaceOrigin, g.center.Y-g.half.Y+spaceOrigin)
}

// sync re-registers the shape in the grid cells covering its bounds
func (w *MemWorld) sync(s *shapeSlot) {
	g := w.geom(s)
	s.obj.Position.X = g.center.X - g.half.X + spaceOrigin
	s.obj.Position.Y = g.center.Y - g.half.Y + spaceOrigin
	s.obj.Update()
	place(s, g)
}

func (w *MemWorld) syncShapes() {
	for i := range w.shapes {
		if w.shapes[i].alive {
			w.sync(&w.shapes[i])
		}
	}
}

// overlap returns overlap flag, normal pointing from b to a, and penetration depth
func (w *MemWorld) overlap(sa, sb *shapeSlot) (bool, vmath.Vec2, float64) {
	ga, gb := w.geom(sa), w.geom(sb)
	place(sa, ga)
	place(sb, gb)
	cs := sa.obj.Shape.Intersection(0, 0, sb.obj.Shape)
	if cs == nil {
		return false, vmath.Vec2{}, 0
	}
	mtv := vmath.V(cs.MTV.X, cs.MTV.Y)
	n := mtv.Normalize()
	if n.IsZero() {
		n = vmath.V(1, 0)
	}
	if n.Dot(ga.center.Sub(gb.center)) < 0 {
		n = n.Scale(-1)
	}
	return true, n, mtv.Length()
}

// candidates lists live shapes sharing a grid cell with s whose slot index is above from, in index order
func (w *MemWorld) candidates(s *shapeSlot, from uint32) []core.ShapeID {
	coll := s.obj.Check(0, 0)
	if coll == nil {
		return nil
	}
	var out []core.ShapeID
	for _, o := range coll.Objects {
		id, ok := o.Data.(core.ShapeID)
		if !ok || w.shape(id) == nil {
			continue
		}
		if idx, _ := core.UnpackHandle(uint64(id)); idx > from {
			out = append(out, id)
		}
	}
	sortByIndex(out)
	return out
}

func sortByIndex(ids []core.ShapeID) {
	sort.Slice(ids, func(i, j int) bool {
		a, _ := core.UnpackHandle(uint64(ids[i]))
		b, _ := core.UnpackHandle(uint64(ids[j]))
		return a < b
	})
}

func (w *MemWorld) OverlapCircle(center vmath.Vec2, radius float64, mask core.Category) []core.ShapeID {
	w.syncShapes()
	query := resolv.NewObject(center.X-radius+spaceOrigin, center.Y-radius+spaceOrigin, 2*radius, 2*radius)
	query.SetShape(resolv.NewCircle(0, 0, radius))
	w.space.Add(query)
	defer w.space.Remove(query)
	query.Shape.SetPosition(center.X+spaceOrigin, center.Y+spaceOrigin)

	coll := query.Check(0, 0)
	if coll == nil {
		return nil
	}
	var out []core.ShapeID
	for _, o := range coll.Objects {
		id, ok := o.Data.(core.ShapeID)
		if !ok {
			continue
		}
		s := w.shape(id)
		if s == nil || !s.def.Filter.Category.Has(mask) {
			continue
		}
		if query.Shape.Intersection(0, 0, o.Shape) != nil {
			out = append(out, id)
		}
	}
	sortByIndex(out)
	return out
}

// === Simulation ===

// connected reports whether two bodies share a joint; jointed bodies never collide
func (w *MemWorld) connected(a, b *bodySlot) bool {
	for _, ja := range a.joints {
		for _, jb := range b.joints {
			if ja == jb {
				return true
			}
		}
	}
	return false
}

// movable bodies receive collision response
func (b *bodySlot) movable() bool {
	return b.typ == BodyDynamic && b.awake && b.driver.IsNull()
}

func (w *MemWorld) integrate(h float64) {
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.alive || b.typ == BodyStatic || !b.awake || !b.driver.IsNull() {
			continue
		}
		if b.linDamping > 0 {
			b.vel = b.vel.Scale(1 / (1 + h*b.linDamping))
		}
		if b.angDamping > 0 {
			b.angVel /= 1 + h*b.angDamping
		}
		b.pos = b.pos.Add(b.vel.Scale(h))
		b.angle += b.angVel * h
	}

	for i := range w.joints {
		j := &w.joints[i]
		if !j.alive {
			continue
		}
		b := w.body(j.def.BodyB)
		if b == nil {
			continue
		}
		if b.awake {
			if j.def.Motor.Enabled {
				b.angVel = j.def.Motor.Speed
			} else if b.angDamping > 0 {
				b.angVel /= 1 + h*b.angDamping
			}
			b.angle += b.angVel * h
		}
		w.pinFollower(j)
	}
}

func (w *MemWorld) pinFollower(j *jointSlot) {
	a, b := w.body(j.def.BodyA), w.body(j.def.BodyB)
	if a == nil || b == nil {
		return
	}
	anchor := a.pos.Add(j.def.AnchorA.Rotate(a.angle))
	b.pos = anchor.Sub(j.def.AnchorB.Rotate(b.angle))
	b.vel = a.vel
}

// shapePairs visits every grid-adjacent shape pair on distinct, unjointed bodies
func (w *MemWorld) shapePairs(fn func(ida, idb core.ShapeID, sa, sb *shapeSlot, ba, bb *bodySlot)) {
	w.syncShapes()
	for i := range w.shapes {
		sa := &w.shapes[i]
		if !sa.alive {
			continue
		}
		ida := core.ShapeID(core.PackHandle(uint32(i), sa.gen))
		for _, idb := range w.candidates(sa, uint32(i)) {
			sb := w.shape(idb)
			if sa.body == sb.body {
				continue
			}
			ba, bb := w.body(sa.body), w.body(sb.body)
			if ba == nil || bb == nil || w.connected(ba, bb) {
				continue
			}
			fn(ida, idb, sa, sb, ba, bb)
		}
	}
}

func (w *MemWorld) resolveCollisions() {
	w.shapePairs(func(ida, idb core.ShapeID, sa, sb *shapeSlot, ba, bb *bodySlot) {
		if sa.def.IsSensor || sb.def.IsSensor || !sa.def.Filter.Accepts(sb.def.Filter) {
			return
		}
		ma, mb := ba.movable(), bb.movable()
		if !ma && !mb {
			return
		}
		ok, n, pen := w.overlap(sa, sb)
		if !ok {
			return
		}
		e := math.Max(sa.def.Restitution, sb.def.Restitution)

		key := makeTouchKey(ida, idb)
		if approach := -ba.vel.Sub(bb.vel).Dot(n); approach > w.impacts[key] {
			w.impacts[key] = approach
		}

		// Leave linearSlop of overlap so resting contacts keep reporting as touching
		corr := math.Max(pen-linearSlop, 0)
		switch {
		case ma && mb:
			ba.pos = ba.pos.Add(n.Scale(corr / 2))
			bb.pos = bb.pos.Sub(n.Scale(corr / 2))
			rel := ba.vel.Sub(bb.vel).Dot(n)
			if rel < 0 {
				j := -(1 + e) * rel / (1/ba.mass + 1/bb.mass)
				ba.vel = ba.vel.Add(n.Scale(j / ba.mass))
				bb.vel = bb.vel.Sub(n.Scale(j / bb.mass))
			}
		case ma:
			ba.pos = ba.pos.Add(n.Scale(corr))
			if vn := ba.vel.Dot(n); vn < 0 {
				ba.vel = ba.vel.Sub(n.Scale((1 + e) * vn))
			}
		default:
			bb.pos = bb.pos.Sub(n.Scale(corr))
			if vn := bb.vel.Dot(n); vn > 0 {
				bb.vel = bb.vel.Sub(n.Scale((1 + e) * vn))
			}
		}
	})
}

// Step advances the world and rebuilds the event arrays
func (w *MemWorld) Step(dt float64, subSteps int) {
	if subSteps < 1 {
		subSteps = 1
	}
	h := dt / float64(subSteps)
	clear(w.impacts)
	for i := 0; i < subSteps; i++ {
		w.integrate(h)
		w.resolveCollisions()
	}
	w.collectEvents()
}

func (w *MemWorld) collectEvents() {
	w.contact = ContactEvents{End: w.pendingContactEnd}
	w.sensor = SensorEvents{End: w.pendingSensorEnd}
	w.pendingContactEnd = nil
	w.pendingSensorEnd = nil

	nowTouching := make(map[touchKey]struct{}, len(w.touching))
	nowSensing := make(map[SensorEvent]struct{}, len(w.sensing))

	w.shapePairs(func(ida, idb core.ShapeID, sa, sb *shapeSlot, ba, bb *bodySlot) {
		switch {
		case sa.def.IsSensor && sb.def.IsSensor:
			return

		case sa.def.IsSensor || sb.def.IsSensor:
			sensor, visitor := ida, idb
			sensorDef, visitorDef := sa.def, sb.def
			if sb.def.IsSensor {
				sensor, visitor = idb, ida
				sensorDef, visitorDef = sb.def, sa.def
			}
			if !sensorDef.Filter.Mask.Has(visitorDef.Filter.Category) {
				return
			}
			if ok, _, _ := w.overlap(sa, sb); !ok {
				return
			}
			key := SensorEvent{SensorShape: sensor, VisitorShape: visitor}
			nowSensing[key] = struct{}{}
			if _, was := w.sensing[key]; !was {
				w.sensor.Begin = append(w.sensor.Begin, key)
			}

		default:
			if !sa.def.Filter.Accepts(sb.def.Filter) {
				return
			}
			ok, n, _ := w.overlap(sa, sb)
			if !ok {
				return
			}
			key := makeTouchKey(ida, idb)
			nowTouching[key] = struct{}{}
			if _, was := w.touching[key]; was {
				return
			}
			w.contact.Begin = append(w.contact.Begin, TouchEvent{ShapeA: ida, ShapeB: idb})

			approach := math.Max(-ba.vel.Sub(bb.vel).Dot(n), w.impacts[key])
			if approach >= w.HitSpeedThreshold {
				ca, cb := w.geom(sa).center, w.geom(sb).center
				point := cb.Add(ca.Sub(cb).Scale(0.5))
				w.contact.Hit = append(w.contact.Hit, HitEvent{ShapeA: ida, ShapeB: idb, Point: point, ApproachSpeed: approach})
			}

			// A moving body touching a sleeping one wakes it
			if ba.awake && !bb.awake && bb.typ == BodyDynamic {
				bb.awake = true
			} else if bb.awake && !ba.awake && ba.typ == BodyDynamic {
				ba.awake = true
			}
		}
	})

	var ended []touchKey
	for key := range w.touching {
		if _, still := nowTouching[key]; !still {
			ended = append(ended, key)
		}
	}
	sort.Slice(ended, func(i, j int) bool {
		if ended[i].a != ended[j].a {
			return ended[i].a < ended[j].a
		}
		return ended[i].b < ended[j].b
	})
	for _, key := range ended {
		w.contact.End = append(w.contact.End, TouchEvent{ShapeA: key.a, ShapeB: key.b})
	}

	var left []SensorEvent
	for key := range w.sensing {
		if _, still := nowSensing[key]; !still {
			left = append(left, key)
		}
	}
	sortSensorEvents(left)
	w.sensor.End = append(w.sensor.End, left...)

	w.touching = nowTouching
	w.sensing = nowSensing
}

func (w *MemWorld) ContactEvents() ContactEvents {
	return w.contact
}

func (w *MemWorld) SensorEvents() SensorEvents {
	return w.sensor
}

func sortSensorEvents(events []SensorEvent) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].SensorShape != events[j].SensorShape {
			return events[i].SensorShape < events[j].SensorShape
		}
		return events[i].VisitorShape < events[j].VisitorShape
	})
}
