package tour

import "time"

// Named regions of a cipher page. Both hosts expose these as tour targets.
const (
	RegionCipherList    = "cipher-list"
	RegionInput         = "input"
	RegionKey           = "key"
	RegionMode          = "mode"
	RegionPlay          = "play"
	RegionOutput        = "output"
	RegionLessonButton  = "lesson-button"
	RegionLessonDialog  = "lesson-dialog"
	RegionSidebarToggle = "sidebar-toggle"
	RegionSidebar       = "sidebar"
)

// CipherPageKey is the storage key of the cipher page tour.
const CipherPageKey = "cipherlab.tour.cipher-page"

// CipherPageTour is the walkthrough shown on a learner's first visit to a
// cipher page.
func CipherPageTour() []Step {
	return []Step{
		{
			Title:       "Welcome to cipherlab",
			Description: "Each page animates one cipher so you can watch every letter being transformed. This short tour shows you around.",
			Position:    Center,
		},
		{
			Target:      RegionInput,
			Title:       "Your message",
			Description: "Type the text to encrypt or decrypt here. The result updates as you type.",
			Position:    Bottom,
		},
		{
			Target:      RegionKey,
			Title:       "The key",
			Description: "Every cipher needs key material. Invalid keys are flagged right below the field and disable the animation.",
			Position:    Bottom,
		},
		{
			Target:      RegionMode,
			Title:       "Encrypt or decrypt",
			Description: "Switch direction. The current output becomes the new input so you can undo what you just did.",
			Position:    Right,
		},
		{
			Target:       RegionPlay,
			Title:        "Watch it happen",
			Description:  "Press play to reveal the output one unit at a time. Try it now.",
			Position:     Bottom,
			WaitForClick: true,
			TriggerNext:  true,
		},
		{
			Target:      RegionOutput,
			Title:       "Step by step",
			Description: "The highlighted unit is the one being processed. The explanation line shows the arithmetic behind it.",
			Position:    Top,
		},
		{
			Target:       RegionLessonButton,
			Title:        "Learn the theory",
			Description:  "Every cipher comes with a short lesson. Close it when you are done reading to continue.",
			Position:     Left,
			AutoClick:    true,
			WaitForClose: RegionLessonDialog,
			HideBackdrop: true,
		},
		{
			Target:         RegionSidebar,
			Title:          "Glossary",
			Description:    "The glossary collects the background behind every cipher, from modular arithmetic to S-boxes.",
			Position:       Right,
			PreClickTarget: RegionSidebarToggle,
			PreClickDelay:  500 * time.Millisecond,
		},
		{
			Title:       "You're all set",
			Description: "That's the tour. Replay it any time with the Tour button, or t in the terminal.",
			Position:    Center,
			IsFinalStep: true,
		},
	}
}
