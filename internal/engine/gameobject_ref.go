package engine

// GameObjectRef is a non-owning reference to a GameObject by UID.
// Components use it for injected collaborators (a camera, a character rig)
// that live elsewhere in the scene.
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// Get resolves the reference in scene.
// Returns nil if the reference is empty or the GameObject no longer exists.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid reports whether the reference is set. It does not check the scene.
func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
	} else {
		r.UID = g.UID
	}
}

func (r *GameObjectRef) Clear() {
	r.UID = 0
}
