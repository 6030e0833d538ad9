package assets

// Text is one line of player-facing copy in both bundled languages.
type Text struct {
	EN string `json:"en"`
	PL string `json:"pl"`
}

// Intro is shown once when a new run begins.
var Intro = Text{
	EN: "Greetings, brave adventurer! I am Mr Owl, the wisest knight in all the land! " +
		"Each monster guards a riddle in Polish. Answer correctly and we claim victory. " +
		"Answer wrong and we must retreat to try again.",
	PL: "Witaj, dzielny poszukiwaczu przygód! Jestem Pan Sowa, najmądrzejszy rycerz w całej krainie! " +
		"Każdy potwór strzeże zagadki po polsku. Odpowiedz poprawnie, a odniesiemy zwycięstwo. " +
		"Odpowiedz źle, a będziemy musieli się wycofać i spróbować ponownie.",
}

// DragonLines is indexed by the current boss streak.
var DragonLines = [3]Text{
	{
		EN: `The mighty dragon speaks in a booming voice: "Brave owl knight! Answer THREE of my riddles correctly, and you may claim my treasure and glory!"`,
		PL: `Potężny smok przemawia gromkim głosem: "Dzielny rycerzu sowo! Odpowiedz poprawnie na TRZY moje zagadki, a zdobędziesz mój skarb i chwałę!"`,
	},
	{
		EN: `The dragon nods approvingly: "One answer correct! Two more to go, little knight!"`,
		PL: `Smok kiwa głową z aprobatą: "Jedna poprawna odpowiedź! Jeszcze dwie, mały rycerzu!"`,
	},
	{
		EN: `The dragon's eyes widen: "Impressive! Just one more correct answer, and victory is yours!"`,
		PL: `Oczy smoka rozszerzają się: "Imponujące! Jeszcze tylko jedna poprawna odpowiedź i zwycięstwo będzie twoje!"`,
	},
}

// DragonRebuke answers a wrong reply during the boss fight.
var DragonRebuke = Text{
	EN: `The dragon shakes its head. "Wrong answer, brave knight! You must retreat and try again!"`,
	PL: `Smok kręci głową. "Zła odpowiedź, dzielny rycerzu! Musisz się wycofać i spróbować ponownie!"`,
}

// MonsterIntros take the monster name and description.
var MonsterIntros = []Text{
	{EN: "A %s appears! %s", PL: "%s pojawia się! %s"},
	{EN: "Before you stands a %s! %s", PL: "Przed tobą stoi %s! %s"},
	{EN: "Out of the shadows emerges a %s! %s", PL: "Z cieni wyłania się %s! %s"},
}

// DragonRoar is used for any streak outside DragonLines.
var DragonRoar = Text{EN: "The dragon roars its challenge!", PL: "Smok ryczy, rzucając wyzwanie!"}

// DefeatLines are the retreat messages after a wrong answer.
var DefeatLines = []Text{
	{
		EN: "The answer was wrong! Mr Owl must retreat to gather his thoughts.",
		PL: "Odpowiedź była błędna! Pan Sowa musi się wycofać i zebrać myśli.",
	},
	{
		EN: "That wasn't quite right. Mr Owl steps back to try again.",
		PL: "To nie było całkiem poprawne. Pan Sowa cofa się, by spróbować ponownie.",
	},
	{
		EN: "Hmm, that answer didn't work. Time to think more carefully!",
		PL: "Hmm, ta odpowiedź nie zadziałała. Czas pomyśleć uważniej!",
	},
}

// VictoryLines take the monster name (EN and PL respectively) as their only argument.
// Used when a monster carries no defeat message of its own.
var VictoryLines = []Text{
	{EN: "The %s is defeated! Mr Owl claims the treasure!", PL: "%s został pokonany! Pan Sowa zdobywa skarb!"},
	{EN: "With wisdom and courage, Mr Owl defeats the %s!", PL: "Z mądrością i odwagą Pan Sowa pokonuje %s!"},
	{EN: "The %s falls! The path is clear!", PL: "%s upada! Droga jest wolna!"},
}

// GenericVictory is the message when no monster is known.
var GenericVictory = Text{EN: "Victory!", PL: "Zwycięstwo!"}

// DragonVictory takes monsters defeated and questions answered correctly.
var DragonVictory = Text{
	EN: "VICTORY! The Ancient Dragon bows before Mr Owl! " +
		`"Your wisdom in the Polish language is truly remarkable!" ` +
		"Mr Owl defeated %d monsters and answered %d questions correctly.",
	PL: "ZWYCIĘSTWO! Starożytny Smok kłania się przed Panem Sową! " +
		`"Twoja mądrość w języku polskim jest naprawdę niezwykła!" ` +
		"Pan Sowa pokonał %d potworów i odpowiedział poprawnie na %d pytań.",
}

// TreasureFound is shown when a treasure room is collected.
var TreasureFound = Text{EN: "You found treasure!", PL: "Znalazłeś skarb!"}

// Directions in compass order: North, East, South, West.
var Directions = [4]Text{
	{EN: "North", PL: "Północ"},
	{EN: "East", PL: "Wschód"},
	{EN: "South", PL: "Południe"},
	{EN: "West", PL: "Zachód"},
}

// Navigation label fragments.
var (
	NavGo         = Text{EN: "Go", PL: "Idź na"}
	NavBoss       = Text{EN: "Dragon's Lair", PL: "Legowisko Smoka"}
	NavBossMarker = Text{EN: "(BOSS)", PL: "(BOSS)"}
	NavExplored   = Text{EN: "(explored)", PL: "(zbadane)"}
)

// RoomTitles keyed by room kind name. Monster rooms switch title once cleared.
var RoomTitles = map[string]Text{
	"entrance": {EN: "Dungeon Entrance", PL: "Wejście do Lochu"},
	"corridor": {EN: "Stone Corridor", PL: "Kamienny Korytarz"},
	"monster":  {EN: "Monster Chamber", PL: "Komnata Potwora"},
	"treasure": {EN: "Treasure Room", PL: "Komnata Skarbów"},
	"boss":     {EN: "The Dragon's Lair", PL: "Legowisko Smoka"},
}

var (
	ClearedChamber = Text{EN: "Cleared Chamber", PL: "Oczyszczona Komnata"}
	UnknownRoom    = Text{EN: "Dungeon Room", PL: "Komnata Lochu"}
)

// UI labels.
var (
	LabelWhereToGo     = Text{EN: "Where to go?", PL: "Dokąd iść?"}
	LabelCorrect       = Text{EN: "Correct!", PL: "Poprawnie!"}
	LabelNotQuite      = Text{EN: "Not quite...", PL: "Nie całkiem..."}
	LabelCorrectAnswer = Text{EN: "The correct answer was:", PL: "Poprawna odpowiedź to:"}
	LabelLoot          = Text{EN: "Loot obtained:", PL: "Zdobyte łupy:"}
	LabelDragon        = Text{EN: "Dragon Challenge:", PL: "Wyzwanie Smoka:"}
)

// Start screen copy.
var (
	NamePrompt   = Text{EN: "What is your name, brave knight?", PL: "Jak masz na imię, dzielny rycerzu?"}
	MenuContinue = Text{EN: "Continue your quest", PL: "Kontynuuj wyprawę"}
	MenuNewRun   = Text{EN: "Start a new quest", PL: "Rozpocznij nową wyprawę"}
	MenuBegin    = Text{EN: "Enter the dungeon", PL: "Wejdź do lochu"}
)
