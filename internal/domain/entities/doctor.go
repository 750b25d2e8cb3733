package entities

// Doctor represents a practitioner as served by the upstream API.
type Doctor struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// Departments returns the distinct department names across doctors.
// Order is first-seen so selector options stay deterministic.
func Departments(doctors []Doctor) []string {
	seen := make(map[string]struct{}, len(doctors))
	departments := make([]string, 0, len(doctors))
	for _, doc := range doctors {
		if _, ok := seen[doc.Department]; ok {
			continue
		}
		seen[doc.Department] = struct{}{}
		departments = append(departments, doc.Department)
	}
	return departments
}

// FilterByDepartment returns the doctors belonging to department.
func FilterByDepartment(doctors []Doctor, department string) []Doctor {
	var filtered []Doctor
	for _, doc := range doctors {
		if doc.Department == department {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

// FindDoctor returns the doctor with the given id, if present.
func FindDoctor(doctors []Doctor, id string) (Doctor, bool) {
	for _, doc := range doctors {
		if doc.ID == id {
			return doc, true
		}
	}
	return Doctor{}, false
}
