package permission

// Kind tags the policy variants. The set is closed.
type Kind uint8

const (
	// OwnerOrAdmin guards account records.
	OwnerOrAdmin Kind = iota + 1
	// AdminWriteOrReadOnly lets anyone read and only admins write.
	AdminWriteOrReadOnly
	// ModeratedWrite lets anyone read, authenticated users write, and
	// restricts changes to existing objects to their author and staff.
	ModeratedWrite
)

func (k Kind) String() string {
	switch k {
	case OwnerOrAdmin:
		return "owner-or-admin"
	case AdminWriteOrReadOnly:
		return "admin-write-or-read-only"
	case ModeratedWrite:
		return "moderated-write"
	}
	return "unknown"
}

// Policy is selected per resource when routes are registered.
type Policy struct {
	kind Kind
}

func New(kind Kind) Policy {
	return Policy{kind: kind}
}

func (p Policy) Kind() Kind {
	return p.kind
}

// AdmitRequest is the request-level check. It needs no I/O.
func (p Policy) AdmitRequest(s Subject, a Action) bool {
	switch p.kind {
	case OwnerOrAdmin:
		if !s.Authenticated() {
			return false
		}
		if a == ActionList || a == ActionCreate {
			return s.Admin()
		}
		return true
	case AdminWriteOrReadOnly:
		return a.Safe() || s.Admin()
	case ModeratedWrite:
		return a.Safe() || s.Authenticated()
	}
	return false
}

// AdmitObject is the object-level check, run after the target was loaded.
func (p Policy) AdmitObject(s Subject, a Action, obj any) bool {
	switch p.kind {
	case OwnerOrAdmin:
		if s.Admin() {
			return true
		}
		target, ok := obj.(Identity)
		return ok && s.Authenticated() && target.SubjectID() == s.ID
	case AdminWriteOrReadOnly:
		return a.Safe() || s.Admin()
	case ModeratedWrite:
		if a.Safe() {
			return true
		}
		if !s.Authenticated() {
			return false
		}
		if s.Admin() || s.Moderator() {
			return true
		}
		target, ok := obj.(Authored)
		return ok && target.AuthoredBy() == s.ID
	}
	return false
}
