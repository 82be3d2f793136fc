package permission

// Permission names an allowed action on an entity.
type Permission string

// Entity is a key into the permission catalog.
type Entity string

// Entities with create/read/update/delete permissions.
const (
	EntityUser         Entity = "user"
	EntityRole         Entity = "role"
	EntityQuestion     Entity = "question"
	EntityTest         Entity = "test"
	EntityTemplate     Entity = "template"
	EntityTag          Entity = "tag"
	EntityEntity       Entity = "entity"
	EntityForm         Entity = "form"
	EntityOrganization Entity = "organization"
)

// Permission catalog.
const (
	CreateUser Permission = "create_user"
	ReadUser   Permission = "read_user"
	UpdateUser Permission = "update_user"
	DeleteUser Permission = "delete_user"

	CreateRole Permission = "create_role"
	ReadRole   Permission = "read_role"
	UpdateRole Permission = "update_role"
	DeleteRole Permission = "delete_role"

	CreateQuestion Permission = "create_question"
	ReadQuestion   Permission = "read_question"
	UpdateQuestion Permission = "update_question"
	DeleteQuestion Permission = "delete_question"

	CreateTest Permission = "create_test"
	ReadTest   Permission = "read_test"
	UpdateTest Permission = "update_test"
	DeleteTest Permission = "delete_test"

	CreateTemplate Permission = "create_template"
	ReadTemplate   Permission = "read_template"
	UpdateTemplate Permission = "update_template"
	DeleteTemplate Permission = "delete_template"

	CreateTag Permission = "create_tag"
	ReadTag   Permission = "read_tag"
	UpdateTag Permission = "update_tag"
	DeleteTag Permission = "delete_tag"

	CreateEntity Permission = "create_entity"
	ReadEntity   Permission = "read_entity"
	UpdateEntity Permission = "update_entity"
	DeleteEntity Permission = "delete_entity"

	CreateForm Permission = "create_form"
	ReadForm   Permission = "read_form"
	UpdateForm Permission = "update_form"
	DeleteForm Permission = "delete_form"

	CreateOrganization Permission = "create_organization"
	ReadOrganization   Permission = "read_organization"
	UpdateOrganization Permission = "update_organization"
	DeleteOrganization Permission = "delete_organization"
)

// EntityPermissions is the create/read/update/delete permission set of one entity.
type EntityPermissions struct {
	Create Permission
	Read   Permission
	Update Permission
	Delete Permission
}

var catalog = map[Entity]EntityPermissions{
	EntityUser:         {CreateUser, ReadUser, UpdateUser, DeleteUser},
	EntityRole:         {CreateRole, ReadRole, UpdateRole, DeleteRole},
	EntityQuestion:     {CreateQuestion, ReadQuestion, UpdateQuestion, DeleteQuestion},
	EntityTest:         {CreateTest, ReadTest, UpdateTest, DeleteTest},
	EntityTemplate:     {CreateTemplate, ReadTemplate, UpdateTemplate, DeleteTemplate},
	EntityTag:          {CreateTag, ReadTag, UpdateTag, DeleteTag},
	EntityEntity:       {CreateEntity, ReadEntity, UpdateEntity, DeleteEntity},
	EntityForm:         {CreateForm, ReadForm, UpdateForm, DeleteForm},
	EntityOrganization: {CreateOrganization, ReadOrganization, UpdateOrganization, DeleteOrganization},
}

// Entities lists the catalog keys in a stable order.
var Entities = []Entity{
	EntityUser,
	EntityRole,
	EntityQuestion,
	EntityTest,
	EntityTemplate,
	EntityTag,
	EntityEntity,
	EntityForm,
	EntityOrganization,
}

// For returns the permission set of entity.
func For(entity Entity) (EntityPermissions, bool) {
	perms, ok := catalog[entity]
	return perms, ok
}
