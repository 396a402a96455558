package models

// Actor classes recognized by environment implementations.
const (
	PlayerActorClass  = "player"
	TeacherActorClass = "teacher"
)

// Actor is one participant in a trial.
type Actor struct {
	Name      string `cbor:"name"`
	ClassName string `cbor:"class_name"`
}

// TrialInfo is the durable metadata recorded for a trial in the datastore.
// A trial id may be announced on the trial-started channel before its
// TrialInfo is durable; until the trial directory client can return it, the
// trial is not yet admissible.
type TrialInfo struct {
	TrialID      string  `cbor:"trial_id"`
	EnvName      string  `cbor:"env_name"`
	Participants []Actor `cbor:"participants"`
	Seed         int64   `cbor:"seed,omitempty"`
}

// IndexedActor pairs an actor with its index in the trial's participant list.
type IndexedActor struct {
	Index int
	Actor Actor
}

// Players returns the actors of the player class, with their indices in the
// participant list.
func (t TrialInfo) Players() []IndexedActor {
	return t.actorsOfClass(PlayerActorClass)
}

// Teachers returns the actors of the teacher class, with their indices in the
// participant list.
func (t TrialInfo) Teachers() []IndexedActor {
	return t.actorsOfClass(TeacherActorClass)
}

func (t TrialInfo) actorsOfClass(class string) []IndexedActor {
	var out []IndexedActor
	for i, a := range t.Participants {
		if a.ClassName == class {
			out = append(out, IndexedActor{Index: i, Actor: a})
		}
	}
	return out
}
