package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration. Every section has a
// working default so the application runs without a config file; a YAML file
// overrides whichever fields it names.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Cow       CowConfig       `yaml:"cow"`
	Animation AnimationConfig `yaml:"animation"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Collision CollisionConfig `yaml:"collision"`
	Assets    AssetsConfig    `yaml:"assets"`
	Scene     SceneConfig     `yaml:"scene"`
}

// WindowConfig holds window creation settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// CameraConfig holds perspective and movement tuning for all camera modes.
type CameraConfig struct {
	FovDegrees float32 `yaml:"fov_degrees"`
	NearPlane  float32 `yaml:"near_plane"`
	FarPlane   float32 `yaml:"far_plane"`

	// Free-fly movement model.
	Acceleration     float32 `yaml:"acceleration"`
	Damping          float32 `yaml:"damping"`
	MaxSpeed         float32 `yaml:"max_speed"`
	FastCoef         float32 `yaml:"fast_coef"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`

	// Collision constraints for the free camera.
	MinCowDistance  float32 `yaml:"min_cow_distance"`
	CollisionRadius float32 `yaml:"collision_radius"`
	MinHeight       float32 `yaml:"min_height"`

	FreePosition [3]float32 `yaml:"free_position"`
	FreeTarget   [3]float32 `yaml:"free_target"`
	FollowOffset [3]float32 `yaml:"follow_offset"`
	PovEyeOffset [3]float32 `yaml:"pov_eye_offset"`
}

// CowConfig holds movement and placement settings for the animated cow.
type CowConfig struct {
	MovementSpeed float32    `yaml:"movement_speed"`
	GroundLevel   float32    `yaml:"ground_level"`
	Position      [3]float32 `yaml:"position"`
	Scale         [3]float32 `yaml:"scale"`
}

// AnimationConfig holds the animation core's tunables: the fallback tick
// rate for sources that report none, allocation hints, and the bone-name
// fragment lists that classify bones into secondary layers.
type AnimationConfig struct {
	DefaultTicksPerSecond float32 `yaml:"default_ticks_per_second"`
	MaxBones              int     `yaml:"max_bones"`
	MaxBoneInfluence      int     `yaml:"max_bone_influence"`

	HeadBoneFilters []string `yaml:"head_bone_filters"`
	TailBoneFilters []string `yaml:"tail_bone_filters"`
}

// LightingConfig holds the default directional light and the house point light.
type LightingConfig struct {
	DirDirection [3]float32 `yaml:"dir_direction"`
	DirAmbient   [4]float32 `yaml:"dir_ambient"`
	DirDiffuse   [4]float32 `yaml:"dir_diffuse"`
	DirSpecular  [4]float32 `yaml:"dir_specular"`

	HousePosition    [3]float32 `yaml:"house_position"`
	HouseAttenuation [3]float32 `yaml:"house_attenuation"`
	HouseAmbient     [4]float32 `yaml:"house_ambient"`
	HouseDiffuse     [4]float32 `yaml:"house_diffuse"`
	HouseSpecular    [4]float32 `yaml:"house_specular"`
}

// CollisionConfig holds overlap margins for the scene collision checks.
type CollisionConfig struct {
	CowBuildingMargin     float32 `yaml:"cow_building_margin"`
	CameraCollisionMargin float32 `yaml:"camera_collision_margin"`
}

// ModelPlacement describes one static model instance placed in the scene.
type ModelPlacement struct {
	Path            string     `yaml:"path"`
	Position        [3]float32 `yaml:"position"`
	Scale           [3]float32 `yaml:"scale"`
	RotationDegrees [3]float32 `yaml:"rotation_degrees"`
}

// AssetsConfig holds asset paths for the cow model and static scenery.
type AssetsConfig struct {
	CowModel     string           `yaml:"cow_model"`
	StaticModels []ModelPlacement `yaml:"static_models"`
}

// SceneConfig holds the animation clip names the scene plays, with fallbacks
// for assets that name their clips differently.
type SceneConfig struct {
	IdlePrimary  string `yaml:"idle_primary"`
	WalkPrimary  string `yaml:"walk_primary"`
	IdleFallback string `yaml:"idle_fallback"`
	WalkFallback string `yaml:"walk_fallback"`

	HeadUp    string `yaml:"head_up"`
	HeadDown  string `yaml:"head_down"`
	HeadLeft  string `yaml:"head_left"`
	HeadRight string `yaml:"head_right"`

	TailUp    string `yaml:"tail_up"`
	TailLeft  string `yaml:"tail_left"`
	TailRight string `yaml:"tail_right"`
}

// Default returns the built-in configuration. Values mirror the tuning the
// Cow World scene ships with.
//
// Returns:
//   - Config: a fully populated configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Cow World",
		},
		Camera: CameraConfig{
			FovDegrees:       45.0,
			NearPlane:        0.1,
			FarPlane:         1000.0,
			Acceleration:     150.0,
			Damping:          5.0,
			MaxSpeed:         10.0,
			FastCoef:         3.0,
			MouseSensitivity: 4.0,
			MinCowDistance:   2.0,
			CollisionRadius:  0.2,
			MinHeight:        0.5,
			FreePosition:     [3]float32{10, 5, 10},
			FreeTarget:       [3]float32{0, 0, 0},
			FollowOffset:     [3]float32{5, 3, 5},
			PovEyeOffset:     [3]float32{0, 0.5, 0},
		},
		Cow: CowConfig{
			MovementSpeed: 0.03,
			GroundLevel:   0.05,
			Position:      [3]float32{0, 0.05, 0},
			Scale:         [3]float32{1, 1, 1},
		},
		Animation: AnimationConfig{
			DefaultTicksPerSecond: 25.0,
			MaxBones:              100,
			MaxBoneInfluence:      4,
			HeadBoneFilters: []string{
				"DEF-head", "DEF-skull", "DEF-jaw", "DEF-nose",
				"DEF-ear", "DEF-neck", "DEF-Bone.001", "DEF-Bone.002",
			},
			TailBoneFilters: []string{"DEF-tail"},
		},
		Lighting: LightingConfig{
			DirDirection:     [3]float32{-0.3, -1.0, -0.2},
			DirAmbient:       [4]float32{0.2, 0.2, 0.2, 1},
			DirDiffuse:       [4]float32{0.8, 0.8, 0.7, 1},
			DirSpecular:      [4]float32{1.0, 1.0, 0.9, 1},
			HousePosition:    [3]float32{-3.0, 5.5, -7.0},
			HouseAttenuation: [3]float32{0.7, 0.08, 0.02},
			HouseAmbient:     [4]float32{0.08, 0.06, 0.04, 1},
			HouseDiffuse:     [4]float32{1.2, 1.0, 0.6, 1},
			HouseSpecular:    [4]float32{0.8, 0.6, 0.4, 1},
		},
		Collision: CollisionConfig{
			CowBuildingMargin:     0.2,
			CameraCollisionMargin: 0.05,
		},
		Assets: AssetsConfig{
			CowModel: "assets/models/AnimatedCow/gltf/CowBlackAnimatedHeadTail.gltf",
			StaticModels: []ModelPlacement{
				{
					Path:            "assets/models/FarmHouse/farm_house/scene.gltf",
					Position:        [3]float32{0, 4.87, -10},
					Scale:           [3]float32{5, 5, 5},
					RotationDegrees: [3]float32{-90, 0, 0},
				},
				{
					Path:            "assets/models/tractor/scene.gltf",
					Position:        [3]float32{-8, 0, -20},
					Scale:           [3]float32{0.002, 0.002, 0.002},
					RotationDegrees: [3]float32{-90, 0, 0},
				},
				{
					Path:            "assets/models/metal_storage_building/scene.gltf",
					Position:        [3]float32{-8, 0.2, -60},
					Scale:           [3]float32{0.10, 0.10, 0.10},
					RotationDegrees: [3]float32{-90, 0, 0},
				},
			},
		},
		Scene: SceneConfig{
			IdlePrimary:  "Cow idle 1 (1_140)",
			WalkPrimary:  "Cow Walk (1_25)",
			IdleFallback: "Idle",
			WalkFallback: "Cow idle 1 (1_140)",
			HeadUp:       "LookUp",
			HeadDown:     "LookDown.001",
			HeadLeft:     "LookLeft",
			HeadRight:    "LookRight",
			TailUp:       "TailUp",
			TailLeft:     "TailLeft",
			TailRight:    "TailRight",
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults.
// A missing file is not an error: the defaults are returned unchanged.
// A file that exists but fails to parse is an error.
//
// Parameters:
//   - path: path to the YAML configuration file
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file exists but cannot be read or parsed
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
