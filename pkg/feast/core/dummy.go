package core

// The sentinel entity stands for "no entity" in entityless feature views.
const (
	DummyEntityName = "__dummy"
	DummyEntityID   = "__dummy_id"

	DummyEntityValueType = ValueType_INT32
)

// DummyEntity returns a new sentinel entity.
func DummyEntity() *Entity {
	return &Entity{
		Spec: &EntitySpec{
			Name:      DummyEntityName,
			JoinKey:   DummyEntityID,
			ValueType: DummyEntityValueType,
		},
	}
}

// IsDummy reports whether e is the sentinel entity, by name.
func (e *Entity) IsDummy() bool {
	return e.Name() == DummyEntityName
}

// GuardDummy forces the canonical join key and value type onto e when it is
// named after the sentinel entity. Other entities are left as they are.
func (e *Entity) GuardDummy() {
	if !e.IsDummy() {
		return
	}
	e.Spec.JoinKey = DummyEntityID
	e.Spec.ValueType = DummyEntityValueType
}
