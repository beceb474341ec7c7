package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/avatar-launch/internal/prompt"
)

var promptForm prompt.Form

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Build a structured image prompt from avatar and scene descriptions",
	Long:  `Merges an avatar description with a scene description and prints the resulting prompt template as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		if interactive {
			if err := askForm(&promptForm); err != nil {
				return err
			}
		}
		if promptForm.Lighting != "" && !prompt.ValidLighting(promptForm.Lighting) {
			return fmt.Errorf("unknown lighting %q: use one of %s",
				promptForm.Lighting, strings.Join(prompt.LightingOptions, ", "))
		}

		out, err := prompt.Build(promptForm).JSON()
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

// askForm fills f interactively. Flag values become the defaults.
func askForm(f *prompt.Form) error {
	fields := []struct {
		label string
		value *string
	}{
		{"Facial features", &f.FacialFeatures},
		{"Clothing", &f.Clothing},
		{"Accessories", &f.Accessories},
		{"Scene vibe", &f.SceneVibe},
		{"Scene elements", &f.SceneElements},
	}
	for _, field := range fields {
		p := promptui.Prompt{Label: field.label, Default: *field.value}
		v, err := p.Run()
		if err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(field.label), err)
		}
		*field.value = strings.TrimSpace(v)
	}

	sel := promptui.Select{
		Label: "Lighting",
		Items: prompt.LightingOptions,
	}
	_, lighting, err := sel.Run()
	if err != nil {
		return fmt.Errorf("lighting: %w", err)
	}
	f.Lighting = lighting
	return nil
}

func init() {
	promptCmd.Flags().StringVar(&promptForm.FacialFeatures, "facial", "", "facial features")
	promptCmd.Flags().StringVar(&promptForm.Clothing, "clothing", "", "clothing")
	promptCmd.Flags().StringVar(&promptForm.Accessories, "accessories", "", "accessories")
	promptCmd.Flags().StringVar(&promptForm.SceneVibe, "vibe", "", "scene vibe")
	promptCmd.Flags().StringVar(&promptForm.SceneElements, "elements", "", "scene elements")
	promptCmd.Flags().StringVar(&promptForm.Lighting, "lighting", prompt.LightingCinematic, "lighting preset")
	promptCmd.Flags().Bool("interactive", false, "ask for each field")
	rootCmd.AddCommand(promptCmd)
}
