package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/avatar-launch/internal/carousel"
	"github.com/ziadkadry99/avatar-launch/internal/history"
	"github.com/ziadkadry99/avatar-launch/internal/imagegen"
	"github.com/ziadkadry99/avatar-launch/internal/prompt"
	"github.com/ziadkadry99/avatar-launch/internal/showcase"
)

// handleBuildPrompt returns the prompt template as indented JSON.
func (s *Server) handleBuildPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := prompt.Form{
		FacialFeatures: request.GetString("facial_features", ""),
		Clothing:       request.GetString("clothing", ""),
		Accessories:    request.GetString("accessories", ""),
		SceneVibe:      request.GetString("scene_vibe", ""),
		SceneElements:  request.GetString("scene_elements", ""),
		Lighting:       request.GetString("lighting", ""),
	}
	if form.Lighting != "" && !prompt.ValidLighting(form.Lighting) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"unknown lighting %q: use one of %s",
			form.Lighting, strings.Join(prompt.LightingOptions, ", "),
		)), nil
	}

	out, err := prompt.Build(form).JSON()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding template: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

// handleGenerateImage renders a prompt and returns the image inline.
func (s *Server) handleGenerateImage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}
	if s.studio == nil {
		return mcp.NewToolResultError(
			"Image generation is not configured. Set the provider API key and restart `avatarlaunch serve`.",
		), nil
	}

	res, err := s.studio.Generate(ctx, text, history.SourceMCP)
	if err != nil {
		var genErr *imagegen.GenerationError
		if errors.As(err, &genErr) {
			return mcp.NewToolResultError(genErr.Message), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	return mcp.NewToolResultImage(fmt.Sprintf("Generated image %s", res.ID), res.Image, "image/png"), nil
}

// handleCarouselState returns the current carousel frame.
func (s *Server) handleCarouselState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.session == nil {
		return mcp.NewToolResultError(carousel.ErrEmptyCollection.Error()), nil
	}
	return frameResult(s.session.Frame())
}

// handleCarouselNavigate applies one carousel action.
func (s *Server) handleCarouselNavigate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, err := request.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: action"), nil
	}
	if s.session == nil {
		return mcp.NewToolResultError(carousel.ErrEmptyCollection.Error()), nil
	}

	var frame showcase.Frame
	switch action {
	case "next":
		frame, err = s.session.Next()
	case "previous":
		frame, err = s.session.Previous()
	case "jump":
		index, reqErr := request.RequireInt("index")
		if reqErr != nil {
			return mcp.NewToolResultError("jump needs an index"), nil
		}
		frame, err = s.session.Jump(index)
	case "select":
		position, reqErr := request.RequireInt("position")
		if reqErr != nil {
			return mcp.NewToolResultError("select needs a position"), nil
		}
		frame, err = s.session.SelectSlot(position)
	case "mute":
		frame, err = s.session.ToggleMute()
	case "play":
		frame, err = s.session.TogglePlay()
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown action %q", action)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return frameResult(frame)
}

func frameResult(f showcase.Frame) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding frame: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
