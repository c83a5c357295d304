package xp

// Cumulative XP required to reach each level. Levels past MaxLevel do not
// exist; XP keeps accumulating but the level is clamped.
var levelThresholds = []int{
	0,     // level 1
	500,   // level 2
	1200,  // level 3
	2000,  // level 4
	3000,  // level 5
	4200,  // level 6
	5600,  // level 7
	7200,  // level 8
	9000,  // level 9
	11000, // level 10
	13200, // level 11
	15600, // level 12
	18200, // level 13
	21000, // level 14
	24000, // level 15
	27200, // level 16
	30600, // level 17
	34200, // level 18
	38000, // level 19
	42000, // level 20
}

const MaxLevel = 20

// LevelForXP returns the greatest level whose threshold is at or below
// totalXP, clamped to MaxLevel. Negative input resolves to level 1.
func LevelForXP(totalXP int) int {
	level := 1
	for i, need := range levelThresholds {
		if totalXP < need {
			break
		}
		level = i + 1
	}
	return level
}

// XPForLevel returns the cumulative XP threshold for level, or false if the
// level is not defined.
func XPForLevel(level int) (int, bool) {
	if level < 1 || level > MaxLevel {
		return 0, false
	}
	return levelThresholds[level-1], true
}

// XPToNextLevel returns how much XP is still missing until the next level,
// or 0 when the top level is already reached.
func XPToNextLevel(totalXP int) int {
	next, ok := XPForLevel(LevelForXP(totalXP) + 1)
	if !ok {
		return 0
	}
	remain := next - totalXP
	if remain < 0 {
		return 0
	}
	return remain
}
