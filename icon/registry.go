package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Progress
	Play
	Link
	Stream
	Good
	Neutral
	Bad
	Unknown
	Config
	Question
)

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "OK", kaomoji: "(๑˃ᴗ˂)ﻭ", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "", plain: "X", kaomoji: "(×﹏×)", squares: "🟥"},
	Progress: {emoji: "⌛", nerd: "", plain: "...", kaomoji: "(・_・ヾ", squares: "🟦"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(^▽^)", squares: "🟪"},
	Link:     {emoji: "🔗", nerd: "", plain: "#", kaomoji: "(・ω・)ノ", squares: "🔳"},
	Stream:   {emoji: "📡", nerd: "", plain: "~", kaomoji: "(ﾟ∀ﾟ)", squares: "🔲"},
	Good:     {emoji: "🟢", nerd: "", plain: "+", kaomoji: "(^_^)", squares: "🟩"},
	Neutral:  {emoji: "🟡", nerd: "", plain: "=", kaomoji: "(-_-)", squares: "🟨"},
	Bad:      {emoji: "🔴", nerd: "", plain: "-", kaomoji: "(T_T)", squares: "🟥"},
	Unknown:  {emoji: "⚪", nerd: "", plain: "?", kaomoji: "(?_?)", squares: "⬜"},
	Config:   {emoji: "⚙️", nerd: "", plain: "*", kaomoji: "(•̀ᴗ•́)", squares: "🟫"},
	Question: {emoji: "❓", nerd: "", plain: "?", kaomoji: "(・・?)", squares: "⬜"},
}
