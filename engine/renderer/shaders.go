package renderer

// WGSL sources for the two scene pipelines. Both share the same frame
// uniforms, light buffer, and Phong fragment stage; they differ only in the
// vertex stage, where the skinned variant blends the bone matrix palette.

const sharedShaderSource = `
struct FrameUniforms {
    view_projection: mat4x4<f32>,
    camera_position: vec4<f32>,
};

struct ObjectUniforms {
    model: mat4x4<f32>,
    base_color: vec4<f32>,
};

struct GpuLight {
    position: vec3<f32>,
    k0: f32,
    direction: vec3<f32>,
    k1: f32,
    ambient: vec4<f32>,
    diffuse: vec4<f32>,
    specular: vec4<f32>,
    k2: f32,
    light_type: u32,
    cut_off: f32,
    outer_cut_off: f32,
};

struct LightBuffer {
    lights: array<GpuLight, 16>,
    count: u32,
    pad0: u32,
    pad1: u32,
    pad2: u32,
};

@group(0) @binding(0) var<uniform> frame: FrameUniforms;
@group(0) @binding(1) var<uniform> light_buffer: LightBuffer;
@group(1) @binding(0) var<uniform> object: ObjectUniforms;

struct VsOut {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) world_position: vec3<f32>,
    @location(1) world_normal: vec3<f32>,
    @location(2) tex_coords: vec2<f32>,
};

fn light_contribution(light: GpuLight, world_pos: vec3<f32>, normal: vec3<f32>, view_dir: vec3<f32>) -> vec3<f32> {
    var light_dir: vec3<f32>;
    var attenuation = 1.0;
    var intensity = 1.0;

    if (light.light_type == 0u) {
        light_dir = normalize(-light.direction);
    } else {
        let to_light = light.position - world_pos;
        let dist = length(to_light);
        light_dir = to_light / max(dist, 0.0001);
        attenuation = 1.0 / (light.k0 + light.k1 * dist + light.k2 * dist * dist);

        if (light.light_type == 2u) {
            let theta = dot(light_dir, normalize(-light.direction));
            let epsilon = light.cut_off - light.outer_cut_off;
            intensity = clamp((theta - light.outer_cut_off) / max(epsilon, 0.0001), 0.0, 1.0);
        }
    }

    let diff = max(dot(normal, light_dir), 0.0);
    let reflect_dir = reflect(-light_dir, normal);
    let spec = pow(max(dot(view_dir, reflect_dir), 0.0), 32.0);

    let ambient = light.ambient.rgb;
    let diffuse = light.diffuse.rgb * diff;
    let specular = light.specular.rgb * spec;

    return (ambient + (diffuse + specular) * intensity) * attenuation;
}

@fragment
fn fs_main(in: VsOut) -> @location(0) vec4<f32> {
    let normal = normalize(in.world_normal);
    let view_dir = normalize(frame.camera_position.xyz - in.world_position);

    var lit = vec3<f32>(0.0, 0.0, 0.0);
    for (var i = 0u; i < light_buffer.count; i = i + 1u) {
        lit = lit + light_contribution(light_buffer.lights[i], in.world_position, normal, view_dir);
    }

    return vec4<f32>(object.base_color.rgb * lit, object.base_color.a);
}
`

const staticShaderSource = sharedShaderSource + `
@vertex
fn vs_main(
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) tex_coords: vec2<f32>,
) -> VsOut {
    var out: VsOut;
    let world = object.model * vec4<f32>(position, 1.0);
    out.clip_position = frame.view_projection * world;
    out.world_position = world.xyz;
    out.world_normal = normalize((object.model * vec4<f32>(normal, 0.0)).xyz);
    out.tex_coords = tex_coords;
    return out;
}
`

const skinnedShaderSource = sharedShaderSource + `
@group(1) @binding(1) var<storage, read> bone_matrices: array<mat4x4<f32>>;

@vertex
fn vs_main(
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) tex_coords: vec2<f32>,
    @location(3) bone_ids: vec4<i32>,
    @location(4) weights: vec4<f32>,
) -> VsOut {
    var skinned_pos = vec4<f32>(0.0, 0.0, 0.0, 0.0);
    var skinned_normal = vec3<f32>(0.0, 0.0, 0.0);
    var total_weight = 0.0;

    for (var i = 0; i < 4; i = i + 1) {
        let id = bone_ids[i];
        let weight = weights[i];
        if (id < 0 || weight <= 0.0) {
            continue;
        }
        let bone = bone_matrices[id];
        skinned_pos = skinned_pos + bone * vec4<f32>(position, 1.0) * weight;
        skinned_normal = skinned_normal + (bone * vec4<f32>(normal, 0.0)).xyz * weight;
        total_weight = total_weight + weight;
    }

    // Vertices with no bone influence pass through unskinned.
    if (total_weight <= 0.0) {
        skinned_pos = vec4<f32>(position, 1.0);
        skinned_normal = normal;
    }

    var out: VsOut;
    let world = object.model * skinned_pos;
    out.clip_position = frame.view_projection * world;
    out.world_position = world.xyz;
    out.world_normal = normalize((object.model * vec4<f32>(skinned_normal, 0.0)).xyz);
    out.tex_coords = tex_coords;
    return out;
}
`
