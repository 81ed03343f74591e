package permissions

// Permission name identifiers. These are the only values the assignment
// protocol accepts for a role's permission set.
const (
	Root = "root"

	UserManage = "user:manage"
	UserRead   = "user:read"
	UserCreate = "user:create"
	UserUpdate = "user:update"
	UserDelete = "user:delete"

	RoleManage = "role:manage"
	RoleRead   = "role:read"
	RoleCreate = "role:create"
	RoleUpdate = "role:update"
	RoleAssign = "role:assign"
	RoleRevoke = "role:revoke"
	RoleDelete = "role:delete"
)

// Node is a node in the permission catalog tree. Name is the stable
// identifier; DisplayName is for presentation only.
type Node struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Children    []Node `json:"children"`
}

// root is the process-wide permission catalog. It is constructed once and
// never mutated; every read goes through a copy.
var root = Node{
	Name:        Root,
	DisplayName: "System",
	Children: []Node{
		{
			Name:        UserManage,
			DisplayName: "User management",
			Children: []Node{
				{Name: UserCreate, DisplayName: "Create users"},
				{Name: UserRead, DisplayName: "View users"},
				{Name: UserUpdate, DisplayName: "Update users"},
				{Name: UserDelete, DisplayName: "Delete users"},
			},
		},
		{
			Name:        RoleManage,
			DisplayName: "Role management",
			Children: []Node{
				{Name: RoleCreate, DisplayName: "Create roles"},
				{Name: RoleRead, DisplayName: "View roles"},
				{Name: RoleUpdate, DisplayName: "Update roles"},
				{Name: RoleAssign, DisplayName: "Assign role permissions"},
				{Name: RoleRevoke, DisplayName: "Revoke role permissions"},
				{Name: RoleDelete, DisplayName: "Delete roles"},
			},
		},
	},
}

var (
	flattened []string
	byName    map[string]struct{}
)

func init() {
	flattened = collect(root, nil)
	byName = make(map[string]struct{}, len(flattened))
	for _, name := range flattened {
		byName[name] = struct{}{}
	}
}

func collect(n Node, acc []string) []string {
	acc = append(acc, n.Name)
	for _, child := range n.Children {
		acc = collect(child, acc)
	}
	return acc
}

// Flatten returns every permission name in the catalog in preorder,
// root first. The order is stable across calls.
func Flatten() []string {
	out := make([]string, len(flattened))
	copy(out, flattened)
	return out
}

// Exists reports whether name is a known permission.
func Exists(name string) bool {
	_, ok := byName[name]
	return ok
}

// Tree returns a copy of the catalog for display. Mutating the returned
// value has no effect on the registry.
func Tree() Node {
	return copyNode(root)
}

func copyNode(n Node) Node {
	out := Node{Name: n.Name, DisplayName: n.DisplayName}
	if len(n.Children) > 0 {
		out.Children = make([]Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = copyNode(child)
		}
	}
	return out
}
