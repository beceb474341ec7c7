package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/avatar-launch/internal/prompt"
)

// buildPromptTool defines the build_prompt MCP tool.
var buildPromptTool = mcp.NewTool("build_prompt",
	mcp.WithDescription("Merge an avatar description and a scene description into a structured image prompt with title, primary prompt, negative prompt and sampler settings."),
	mcp.WithString("facial_features",
		mcp.Description("Face, hair and expression of the character"),
	),
	mcp.WithString("clothing",
		mcp.Description("What the character wears"),
	),
	mcp.WithString("accessories",
		mcp.Description("Jewellery, glasses, props"),
	),
	mcp.WithString("scene_vibe",
		mcp.Description("Mood or setting of the environment, e.g. \"rainy neon alley\""),
	),
	mcp.WithString("scene_elements",
		mcp.Description("Objects and details in the background"),
	),
	mcp.WithString("lighting",
		mcp.Description("Lighting preset (default Cinematic)"),
		mcp.Enum(prompt.LightingOptions...),
	),
)

// generateImageTool defines the generate_image MCP tool.
var generateImageTool = mcp.NewTool("generate_image",
	mcp.WithDescription("Generate one image from a text prompt with the configured provider. Returns the image."),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("Text prompt describing the image"),
	),
)

// carouselStateTool defines the carousel_state MCP tool.
var carouselStateTool = mcp.NewTool("carousel_state",
	mcp.WithDescription("Get the showcase carousel's current frame: active item, playback flags and the slot of every item."),
)

// carouselNavigateTool defines the carousel_navigate MCP tool.
var carouselNavigateTool = mcp.NewTool("carousel_navigate",
	mcp.WithDescription("Drive the showcase carousel and return the resulting frame."),
	mcp.WithString("action",
		mcp.Required(),
		mcp.Description("What to do"),
		mcp.Enum("next", "previous", "jump", "select", "mute", "play"),
	),
	mcp.WithNumber("index",
		mcp.Description("Item index for jump; wraps around"),
	),
	mcp.WithNumber("position",
		mcp.Description("Relative card position for select: -1 left, 0 centre, 1 right"),
	),
)
