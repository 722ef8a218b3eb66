package scene

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/cow-world/common"
	"github.com/Carmen-Shannon/cow-world/engine/animation"
	"github.com/Carmen-Shannon/cow-world/engine/camera"
	"github.com/Carmen-Shannon/cow-world/engine/config"
	"github.com/Carmen-Shannon/cow-world/engine/light"
	"github.com/Carmen-Shannon/cow-world/engine/loader"
	"github.com/Carmen-Shannon/cow-world/engine/model"
	"github.com/Carmen-Shannon/cow-world/engine/renderer"
	"github.com/Carmen-Shannon/cow-world/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera slots, cycled in order with the next-camera key.
const (
	cameraFree = iota
	cameraFollow
	cameraPOV
	cameraCount
)

// cowEntity is the one animated actor in the scene: the skeletal cow, its
// GPU handles, its animator, and its catalog for loading further clips.
type cowEntity struct {
	skeletal *model.SkeletalModel
	meshes   []renderer.Mesh
	object   renderer.Object

	// bounds are local-space, computed from the bind-pose vertices.
	bounds common.AABB

	position mgl32.Vec3
	heading  float32
	scale    mgl32.Vec3
	moving   bool

	animator animation.Animator
	catalog  *animation.Catalog
	idle     *animation.Clip
	walk     *animation.Clip
}

// worldBoundsAt returns the cow's world-space bounds at a candidate position.
func (c *cowEntity) worldBoundsAt(pos mgl32.Vec3) common.AABB {
	m := common.ComposeTRS(pos, c.heading, mgl32.Vec3{}, c.scale)
	return c.bounds.Transformed(m)
}

// center returns the point cameras track, one unit above the cow's feet.
func (c *cowEntity) center() mgl32.Vec3 {
	return c.position.Add(mgl32.Vec3{0, 1, 0})
}

// staticEntity is a placed scenery model with its GPU handles and
// world-space bounds for collision.
type staticEntity struct {
	static *model.StaticModel
	meshes []renderer.Mesh
	object renderer.Object
	matrix mgl32.Mat4
	bounds common.AABB
}

// clipResult carries an asynchronously loaded clip back to the update tick.
type clipResult struct {
	name  string
	layer animation.LayerKey
	clip  *animation.Clip
	err   error
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu  sync.Mutex
	cfg config.Config

	win window.Window
	in  *window.Input
	r   renderer.Renderer
	ld  loader.Loader

	cameras      []camera.Camera
	activeCamera int

	cow     *cowEntity
	statics []*staticEntity

	lights   []light.Light
	lightBuf light.GPULightBuffer

	collider *Collider

	clipWorkers int
	clipPool    worker.DynamicWorkerPool
	clipResults chan clipResult
	clipCache   map[string]*animation.Clip
	inFlight    map[string]bool
	nextTaskID  int

	lastTime float64
}

// Scene coordinates the Cow World frame: input handling, cow movement with
// collision, layered animation playback, camera modes, and rendering.
// One Tick call runs a full frame; the window's update callback drives it.
type Scene interface {
	// Camera returns the currently active camera.
	//
	// Returns:
	//   - camera.Camera: the active camera
	Camera() camera.Camera

	// ActiveCameraIndex returns the active camera slot.
	//
	// Returns:
	//   - int: 0 free, 1 follow, 2 first-person
	ActiveCameraIndex() int

	// NextCamera cycles to the next camera slot, wrapping to the first.
	NextCamera()

	// Tick runs one full frame: drains finished clip loads, processes
	// input, advances simulation and animation, and renders.
	Tick()

	// Update advances simulation and animation state without rendering.
	//
	// Parameters:
	//   - deltaTime: elapsed seconds since the previous frame
	Update(deltaTime float32)

	// Render draws the current frame and presents it.
	//
	// Returns:
	//   - error: error if the swapchain texture could not be acquired
	Render() error
}

var _ Scene = &scene{}

// NewScene builds the Cow World scene: loads the cow and scenery models,
// sets up the animation catalog and layered animator, creates the three
// cameras and the lights, and wires window input and resize callbacks.
//
// A cow model that fails to load is logged and skipped so the scenery still
// renders; a scenery model that fails to load is likewise skipped.
//
// Parameters:
//   - cfg: the application configuration
//   - win: the platform window
//   - r: the renderer
//   - ld: the model loader
//   - opts: optional configuration functions
//
// Returns:
//   - Scene: the initialized scene
//   - error: error if GPU resource creation fails
func NewScene(cfg config.Config, win window.Window, r renderer.Renderer, ld loader.Loader, opts ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		cfg:         cfg,
		win:         win,
		in:          window.NewInput(),
		r:           r,
		ld:          ld,
		clipWorkers: 2,
		clipResults: make(chan clipResult, 16),
		clipCache:   make(map[string]*animation.Clip),
		inFlight:    make(map[string]bool),
		collider: NewCollider(
			cfg.Collision.CowBuildingMargin,
			cfg.Collision.CameraCollisionMargin,
			cfg.Camera.CollisionRadius,
			cfg.Camera.MinHeight,
			cfg.Camera.MinCowDistance,
		),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.in.Attach(win)
	s.clipPool = worker.NewDynamicWorkerPool(s.clipWorkers, 64, 1*time.Second)

	if err := s.setupCow(); err != nil {
		log.Printf("[scene] cow unavailable: %v", err)
		s.cow = nil
	}
	if err := s.setupStatics(); err != nil {
		return nil, err
	}
	s.setupCameras()
	s.setupLights()

	win.SetResizeCallback(func(width, height int) {
		s.r.Resize(width, height)
		if height > 0 {
			aspect := float32(width) / float32(height)
			for _, cam := range s.cameras {
				cam.SetPerspective(s.cfg.Camera.FovDegrees, aspect, s.cfg.Camera.NearPlane, s.cfg.Camera.FarPlane)
			}
		}
	})

	s.lastTime = win.Time()
	return s, nil
}

func (s *scene) setupCow() error {
	skeletal, err := s.ld.LoadSkeletal(s.cfg.Assets.CowModel)
	if err != nil {
		return err
	}

	src, err := s.ld.OpenSource(s.cfg.Assets.CowModel)
	if err != nil {
		return err
	}
	catalog, err := animation.NewCatalog(src, skeletal.BoneTable(), s.cfg.Animation.DefaultTicksPerSecond)
	if err != nil {
		return err
	}

	idle := s.loadWithFallback(catalog, s.cfg.Scene.IdlePrimary, s.cfg.Scene.IdleFallback)
	walk := s.loadWithFallback(catalog, s.cfg.Scene.WalkPrimary, s.cfg.Scene.WalkFallback)
	if idle == nil {
		return fmt.Errorf("no idle animation in %s", s.cfg.Assets.CowModel)
	}

	anim := animation.NewAnimator(
		animation.WithClassifier(animation.NewClassifier(
			s.cfg.Animation.HeadBoneFilters,
			s.cfg.Animation.TailBoneFilters,
		)),
		animation.WithMaxBones(s.cfg.Animation.MaxBones),
	)
	anim.PlayPrimary(idle)

	object, err := s.r.CreateSkinnedObject(skeletal.Name)
	if err != nil {
		return err
	}
	object.SetBaseColor(mgl32.Vec4{0.85, 0.85, 0.85, 1})

	meshes, bounds, err := s.uploadMeshes(skeletal.Name, skeletal.Meshes)
	if err != nil {
		return err
	}

	s.cow = &cowEntity{
		skeletal: skeletal,
		meshes:   meshes,
		object:   object,
		bounds:   bounds,
		position: vec3(s.cfg.Cow.Position),
		scale:    vec3(s.cfg.Cow.Scale),
		animator: anim,
		catalog:  catalog,
		idle:     idle,
		walk:     walk,
	}
	s.cow.object.SetModelMatrix(common.ComposeTRS(s.cow.position, 0, mgl32.Vec3{}, s.cow.scale))
	return nil
}

// loadWithFallback loads a clip by name, trying the fallback name when the
// primary is absent. Returns nil when neither loads.
func (s *scene) loadWithFallback(catalog *animation.Catalog, name, fallback string) *animation.Clip {
	clip, err := catalog.Load(name)
	if err == nil {
		return clip
	}
	log.Printf("[scene] clip %q unavailable, trying %q: %v", name, fallback, err)

	clip, err = catalog.Load(fallback)
	if err != nil {
		log.Printf("[scene] fallback clip %q unavailable: %v", fallback, err)
		return nil
	}
	return clip
}

func (s *scene) setupStatics() error {
	for _, placement := range s.cfg.Assets.StaticModels {
		static, err := s.ld.LoadStatic(placement.Path)
		if err != nil {
			log.Printf("[scene] static model %s unavailable: %v", placement.Path, err)
			continue
		}

		matrix := common.ComposeTRS(
			vec3(placement.Position),
			0,
			radians(placement.RotationDegrees),
			vec3(placement.Scale),
		)

		object, err := s.r.CreateStaticObject(static.Name)
		if err != nil {
			return err
		}
		object.SetModelMatrix(matrix)
		object.SetBaseColor(mgl32.Vec4{0.6, 0.55, 0.5, 1})

		meshes, _, err := s.uploadMeshes(static.Name, static.Meshes)
		if err != nil {
			return err
		}

		bounds := static.WorldBounds(matrix)
		s.collider.AddObstacle(bounds)

		s.statics = append(s.statics, &staticEntity{
			static: static,
			meshes: meshes,
			object: object,
			matrix: matrix,
			bounds: bounds,
		})
	}
	return nil
}

// uploadMeshes pushes each mesh's vertex and index data to the GPU and
// accumulates the bind-pose bounds.
func (s *scene) uploadMeshes(label string, meshes []model.Mesh) ([]renderer.Mesh, common.AABB, error) {
	uploaded := make([]renderer.Mesh, 0, len(meshes))
	min := mgl32.Vec3{mgl32.MaxValue, mgl32.MaxValue, mgl32.MaxValue}
	max := mgl32.Vec3{-mgl32.MaxValue, -mgl32.MaxValue, -mgl32.MaxValue}

	for i := range meshes {
		mesh := &meshes[i]
		gpu, err := s.r.UploadMesh(
			fmt.Sprintf("%s/%s", label, mesh.Name),
			common.SliceToBytes(mesh.Vertices),
			common.SliceToBytes(mesh.Indices),
			len(mesh.Indices),
		)
		if err != nil {
			return nil, common.AABB{}, fmt.Errorf("uploading mesh %s of %s: %w", mesh.Name, label, err)
		}
		uploaded = append(uploaded, gpu)

		for _, v := range mesh.Vertices {
			for axis := 0; axis < 3; axis++ {
				if v.Position[axis] < min[axis] {
					min[axis] = v.Position[axis]
				}
				if v.Position[axis] > max[axis] {
					max[axis] = v.Position[axis]
				}
			}
		}
	}
	return uploaded, common.NewAABB(min, max), nil
}

func (s *scene) setupCameras() {
	aspect := float32(s.win.Width()) / float32(max(s.win.Height(), 1))
	up := mgl32.Vec3{0, 1, 0}
	perspective := camera.WithPerspective(s.cfg.Camera.FovDegrees, aspect, s.cfg.Camera.NearPlane, s.cfg.Camera.FarPlane)
	tuning := camera.WithTuning(
		s.cfg.Camera.Acceleration,
		s.cfg.Camera.Damping,
		s.cfg.Camera.MaxSpeed,
		s.cfg.Camera.FastCoef,
		s.cfg.Camera.MouseSensitivity,
	)

	center := mgl32.Vec3{0, 1, 0}
	if s.cow != nil {
		center = s.cow.center()
	}

	free := camera.NewCamera(perspective, tuning,
		camera.WithPlacement(vec3(s.cfg.Camera.FreePosition), vec3(s.cfg.Camera.FreeTarget), up))
	follow := camera.NewCamera(perspective, tuning,
		camera.WithPlacement(center.Add(vec3(s.cfg.Camera.FollowOffset)), center, up))
	pov := camera.NewCamera(perspective, tuning,
		camera.WithPlacement(center.Add(vec3(s.cfg.Camera.PovEyeOffset)), center.Add(mgl32.Vec3{0, 0.5, -2}), up))

	s.cameras = []camera.Camera{free, follow, pov}
}

func (s *scene) setupLights() {
	lighting := s.cfg.Lighting

	s.lights = []light.Light{
		light.NewDirectional(
			light.WithDirection(vec3(lighting.DirDirection)),
			light.WithColors(vec4(lighting.DirAmbient), vec4(lighting.DirDiffuse), vec4(lighting.DirSpecular)),
		),
		light.NewPoint(
			light.WithPosition(vec3(lighting.HousePosition)),
			light.WithAttenuation(lighting.HouseAttenuation[0], lighting.HouseAttenuation[1], lighting.HouseAttenuation[2]),
			light.WithColors(vec4(lighting.HouseAmbient), vec4(lighting.HouseDiffuse), vec4(lighting.HouseSpecular)),
		),
	}
	s.lightBuf = light.PackLights(s.lights)
}

func (s *scene) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameras[s.activeCamera]
}

func (s *scene) ActiveCameraIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeCamera
}

func (s *scene) NextCamera() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeCamera = (s.activeCamera + 1) % cameraCount
	log.Printf("[scene] switched to camera %d", s.activeCamera)
}

func (s *scene) Tick() {
	now := s.win.Time()
	dt := float32(now - s.lastTime)
	s.lastTime = now
	// Clamp pauses (window drags, debugger stops) to a sane frame step.
	if dt > 0.1 {
		dt = 0.1
	}

	s.drainClipResults()
	s.handleInput()
	s.Update(dt)
	if err := s.Render(); err != nil {
		log.Printf("[scene] render: %v", err)
	}
}

func (s *scene) Update(deltaTime float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cam := s.cameras[s.activeCamera]
	if s.activeCamera == cameraFree {
		// With no cow loaded the distance check compares against a point far
		// outside the scene and never rejects.
		cowPos := mgl32.Vec3{mgl32.MaxValue, 0, 0}
		if s.cow != nil {
			cowPos = s.cow.position
		}
		cam.UpdateWithCollision(deltaTime, func(pos mgl32.Vec3) bool {
			return s.collider.CameraMoveAllowed(pos, cowPos)
		})
	} else {
		cam.Update(deltaTime)
	}

	if s.cow != nil {
		s.cow.animator.UpdateAnimation(deltaTime)
		s.cow.object.SetBoneMatrices(s.cow.animator.FinalBoneMatrices())
		s.cow.object.SetModelMatrix(common.ComposeTRS(s.cow.position, s.cow.heading, mgl32.Vec3{}, s.cow.scale))
	}
}

func (s *scene) Render() error {
	s.mu.Lock()
	cam := s.cameras[s.activeCamera]
	s.mu.Unlock()

	s.r.UpdateFrame(cam.ViewProjectionMatrix(), cam.Position(), s.lightBuf)

	if err := s.r.BeginFrame(); err != nil {
		return err
	}

	for _, st := range s.statics {
		for _, mesh := range st.meshes {
			if err := s.r.Draw(st.object, mesh); err != nil {
				log.Printf("[scene] draw %s: %v", st.static.Name, err)
			}
		}
	}
	if s.cow != nil {
		for _, mesh := range s.cow.meshes {
			if err := s.r.Draw(s.cow.object, mesh); err != nil {
				log.Printf("[scene] draw %s: %v", s.cow.skeletal.Name, err)
			}
		}
	}

	s.r.EndFrame()
	s.r.Present()
	return nil
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func vec4(v [4]float32) mgl32.Vec4 {
	return mgl32.Vec4{v[0], v[1], v[2], v[3]}
}

func radians(degrees [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.DegToRad(degrees[0]),
		mgl32.DegToRad(degrees[1]),
		mgl32.DegToRad(degrees[2]),
	}
}
