package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type DummyTag struct{}

var DummyTagComponent = NewComponent[DummyTag]()
