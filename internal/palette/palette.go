// Package palette holds the fixed color palette shared by projects and habits.
package palette

// Colors is the palette, in assignment order.
var Colors = []string{
	"#3b82f6", // blue
	"#10b981", // emerald
	"#f43f5e", // rose
	"#f59e0b", // amber
	"#6366f1", // indigo
	"#a855f7", // purple
	"#ec4899", // pink
	"#06b6d4", // cyan
}

// Default is the color preselected for new projects.
func Default() string {
	return Colors[0]
}

// Pick assigns a color round-robin from the current entity count. Two clients
// creating entities at the same time can land on the same color; that is
// cosmetic only.
func Pick(count int) string {
	if count < 0 {
		count = 0
	}
	return Colors[count%len(Colors)]
}

// Contains reports whether hex is a palette color.
func Contains(hex string) bool {
	for _, c := range Colors {
		if c == hex {
			return true
		}
	}
	return false
}
