package assets

// Map glyphs. All are two columns wide so the map grid stays aligned.
const (
	GlyphPlayer   = "🦉"
	GlyphEntrance = "🚪"
	GlyphCorridor = "🟫"
	GlyphMonster  = "👾"
	GlyphCleared  = "✅"
	GlyphTreasure = "💰"
	GlyphLooted   = "📦"
	GlyphBoss     = "🐉"
	GlyphUnknown  = "❔"
	GlyphLoot     = "💎"
)

// Edge glyphs drawn between neighbouring rooms on the map.
const (
	EdgeHorizontal = '─'
	EdgeVertical   = '│'
)
