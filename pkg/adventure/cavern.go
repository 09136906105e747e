package adventure

import (
	"fmt"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/dsl"
)

// Scene names a node of the cavern adventure.
type Scene int

const (
	Intro Scene = iota
	CavernEntrance

	LeftPassage
	FightGoblin
	CastFireballOnGoblin
	BribeGoblin
	GoblinDefeated
	RunAway

	CenterPassage
	DrinkFromFountain
	IgnoreFountain

	RightPassage
	MagicAttackDragon
	PhysicalAttackDragon
	PayDragon
	RunFromDragon

	TreasureRoom
	TakeChalice
	TakePotion
	TakeCrystal

	Victory
)

var sceneNames = [...]string{
	"Intro", "CavernEntrance",
	"LeftPassage", "FightGoblin", "CastFireballOnGoblin", "BribeGoblin", "GoblinDefeated", "RunAway",
	"CenterPassage", "DrinkFromFountain", "IgnoreFountain",
	"RightPassage", "MagicAttackDragon", "PhysicalAttackDragon", "PayDragon", "RunFromDragon",
	"TreasureRoom", "TakeChalice", "TakePotion", "TakeCrystal",
	"Victory",
}

func (s Scene) String() string {
	if s < 0 || int(s) >= len(sceneNames) {
		return fmt.Sprintf("Scene(%d)", int(s))
	}
	return sceneNames[s]
}

// ParseScene returns the scene with the given name.
func ParseScene(name string) (Scene, error) {
	for i, n := range sceneNames {
		if n == name {
			return Scene(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scene %q", name)
}

const (
	attackLabel = "[ATTACK] "
	spellLabel  = " [SPELL] "
	bribeLabel  = " [BRIBE] "
	fleeLabel   = "  [FLEE] "
	drinkLabel  = " [DRINK] "
	ignoreLabel = "[IGNORE] "
)

// Dialogue is the built cavern adventure.
type Dialogue = dsl.Dialogue[Scene, string, string]

// Cavern authors the adventure with conditions and actions bound to p.
func Cavern(p *Player, opts ...dsl.Option) (*Dialogue, error) {
	health, mana, gold := p.Handle(Health), p.Handle(Mana), p.Handle(Gold)

	b := dsl.New[Scene, string, string](opts...)

	b.Linear(Intro,
		"You stand at the entrance of a dark cavern. Legend speaks of treasure within, but also of great danger.",
		CavernEntrance, "Enter the cavern.")

	b.Node(CavernEntrance, "The cavern is cold and damp. Three passages stretch before you: left, center, and right.").
		Choice(LeftPassage, "Take the left passage.").
		Choice(CenterPassage, "Take the center passage.").
		Choice(RightPassage, "Take the right passage.").
		Done()

	// Left passage: the goblin.
	b.Node(LeftPassage, "You encounter a goblin blocking your path! It snarls menacingly.").
		Choice(FightGoblin, attackLabel+"Fight the goblin.", dsl.Then(Modify(health, -15))).
		Choice(CastFireballOnGoblin, spellLabel+"Cast a fireball on the goblin.", dsl.Then(Modify(mana, -20))).
		Choice(BribeGoblin, bribeLabel+"Offer some gold to the goblin.", dsl.Then(Modify(gold, -999_999))).
		Choice(RunAway, fleeLabel+"Run back to the entrance.").
		Done()
	b.Linear(FightGoblin,
		"You fight the goblin bravely! You defeat it but take some damage.\n[-15 HEALTH]",
		GoblinDefeated, "Continue.")
	b.Linear(CastFireballOnGoblin,
		"You cast a fireball on the goblin. It gets absolutely obliterated.\n[-20 MANA]",
		GoblinDefeated, "Continue.")
	b.Linear(BribeGoblin,
		"The goblin grabs your gold and scurries away, laughing.",
		GoblinDefeated, "Continue.")
	b.Linear(RunAway,
		"You flee back to the entrance, your heart pounding.",
		CavernEntrance, "Catch your breath.")
	b.Linear(GoblinDefeated,
		"With the goblin gone, you look around and find nothing. What a waste of time!",
		CavernEntrance, "Return to the entrance.")

	// Center passage: the fountain.
	b.Node(CenterPassage, "You discover a mystical fountain glowing with blue light. The water looks rejuvenating.").
		Choice(DrinkFromFountain, drinkLabel+"Drink from the fountain.",
			dsl.Then(Modify(health, 30)), dsl.Then(Modify(mana, 20))).
		Choice(IgnoreFountain, ignoreLabel+"Leave the fountain alone.").
		Done()
	b.Linear(DrinkFromFountain,
		"The water is cool and refreshing! Your wounds heal and your mind clears.\n[+30 HEALTH] [+20 MANA]",
		CavernEntrance, "Return to the entrance.")
	b.Linear(IgnoreFountain,
		"You wisely avoid the strange fountain. Better safe than sorry.",
		CavernEntrance, "Return to the entrance.")

	// Right passage: the dragon.
	b.Node(RightPassage, "A MASSIVE DRAGON blocks your path! Its eyes glow with ancient intelligence.\nIt speaks: \"Mortal, you may pass... but for a price.\"").
		Choice(PhysicalAttackDragon, attackLabel+" Fight the dragon.",
			dsl.Then(domain.Sequence(Modify(health, -90), Modify(gold, 150)))).
		Choice(MagicAttackDragon, spellLabel+"Cast a powerful spell.",
			dsl.When(HasMinimum(mana, 100)),
			dsl.Then(domain.Sequence(Modify(mana, -100), Modify(gold, 200)))).
		Choice(PayDragon, bribeLabel+"Pay the dragon's toll.",
			dsl.When(HasMinimum(gold, 100)),
			dsl.Then(Modify(gold, -100))).
		Choice(RunFromDragon, fleeLabel+"This is madness! Run away!").
		Done()
	b.Linear(PhysicalAttackDragon,
		"You charge at the dragon! It swats you aside, but you manage to wound it. The dragon retreats, leaving behind some of its hoard.\n[-90 HEALTH] [+150 GOLD]",
		TreasureRoom, "Explore the treasure room.")
	b.Linear(MagicAttackDragon,
		"Your spell strikes true! The dragon roars in pain and flies away. You find its entire treasure hoard!\n[-100 MANA] [+200 GOLD]",
		TreasureRoom, "Explore the treasure room.")
	b.Linear(PayDragon,
		"The dragon accepts your payment with a satisfied growl: \"You may pass, mortal.\"\nIt gestures to its treasure room.\n[-100 GOLD]",
		TreasureRoom, "Enter the treasure room.")
	b.Linear(RunFromDragon,
		"You flee in terror! The dragon's laughter echoes behind you.",
		CavernEntrance, "Return to the entrance.")

	b.Node(TreasureRoom, "You enter the treasure room! Piles of gold and magical artifacts surround you.\nYou can only take one item, which one will you get?").
		Choice(TakeChalice, "Take the golden chalice.", dsl.Then(Modify(gold, 100))).
		Choice(TakePotion, "Take the health potion.", dsl.Then(Modify(health, 50))).
		Choice(TakeCrystal, "Take the mana crystal.", dsl.Then(Modify(mana, 50))).
		Done()
	b.Linear(TakeChalice,
		"You take the golden chalice. Its weight is satisfying in your hands.\n[+100 GOLD]",
		Victory, "Leave the cavern.")
	b.Linear(TakePotion,
		"You drink the health potion. Your wounds heal instantly!\n[+50 HEALTH]",
		Victory, "Leave the cavern.")
	b.Linear(TakeCrystal,
		"You absorb the mana crystal. Power surges through you!\n[+50 MANA]",
		Victory, "Leave the cavern.")

	// The closing choice has no text; drivers show it as the end of the story.
	b.Terminal(Victory, "You left the cavern alive.", "")

	return b.Build()
}

// NewRunner builds the cavern for p and starts it at start.
func NewRunner(p *Player, start Scene, opts ...parley.Option) (*parley.Runner[string, string], error) {
	d, err := Cavern(p)
	if err != nil {
		return nil, err
	}
	return d.Runner(p.Values(), start, opts...)
}
