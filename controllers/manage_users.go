package controllers

import (
	"encoding/json"
	"net/http"

	dbpkg "auroragov/db"
	"auroragov/models"
	"auroragov/tools"

	"github.com/gin-gonic/gin"
)

/************************************************
/**** MARK: AÇÕES ****/
/************************************************/
const ACTION_LIST_USERS = "list_users"
const ACTION_CREATE_USER = "create_user"
const ACTION_UPDATE_USER = "update_user"
const ACTION_TOGGLE_USER_STATUS = "toggle_user_status"
const ACTION_LIST_ORGANIZATIONS = "list_organizations"
const ACTION_CREATE_ORGANIZATION = "create_organization"
const ACTION_UPDATE_ORGANIZATION = "update_organization"

type ManageUsersRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// ManageUsers despacha as ações administrativas. Regras de papel:
//   - super_admin: tudo, em qualquer organização;
//   - gestor: ações de usuário restritas à própria organização;
//   - usuario: barrado no RoleRequired da rota.
//
// Ações de organização são exclusivas do super_admin.
func ManageUsers(c *gin.Context) {
	caller, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req ManageUsersRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Action == "" {
		RespondError(c, "Faltando campo action", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	switch req.Action {
	case ACTION_LIST_USERS:
		listUsers(c, caller)
	case ACTION_CREATE_USER:
		createUserAction(c, caller, req.Data)
	case ACTION_UPDATE_USER:
		updateUserAction(c, caller, req.Data)
	case ACTION_TOGGLE_USER_STATUS:
		toggleUserStatus(c, caller, req.Data)
	case ACTION_LIST_ORGANIZATIONS:
		listOrganizations(c, caller)
	case ACTION_CREATE_ORGANIZATION:
		createOrganization(c, caller, req.Data)
	case ACTION_UPDATE_ORGANIZATION:
		updateOrganization(c, caller, req.Data)
	default:
		RespondError(c, "action desconhecida: "+req.Action, http.StatusBadRequest)
	}
}

func listUsers(c *gin.Context, caller models.User) {
	db := dbpkg.DBInstance(c)

	q := db.Model(&models.User{})
	if caller.Role != models.USER_ROLE_SUPER_ADMIN {
		q = q.Where("organization_id = ?", caller.OrganizationID)
	}

	var users []models.User
	if err := q.Order("id asc").Find(&users).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	RespondSuccess(c, gin.H{"users": users, "total": len(users)})
}

type createUserData struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	OrganizationID int64  `json:"organization_id"`
	Cargo          string `json:"cargo"`
}

func createUserAction(c *gin.Context, caller models.User, data json.RawMessage) {
	db := dbpkg.DBInstance(c)

	var d createUserData
	if err := json.Unmarshal(data, &d); err != nil {
		RespondError(c, "data inválido", http.StatusBadRequest)
		return
	}

	user := models.User{
		Name:           d.Name,
		Email:          d.Email,
		Password:       d.Password,
		Role:           d.Role,
		OrganizationID: d.OrganizationID,
		Cargo:          d.Cargo,
	}
	if missing := user.MissingFields(); missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}
	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "E-mail inválido!", http.StatusBadRequest)
		return
	}
	if user.Role == "" {
		user.Role = models.USER_ROLE_USUARIO
	}
	if !models.IsValidRole(user.Role) {
		RespondError(c, "role inválido", http.StatusBadRequest)
		return
	}

	// gestor só cria usuário comum dentro da própria organização
	if caller.Role != models.USER_ROLE_SUPER_ADMIN {
		if user.Role != models.USER_ROLE_USUARIO {
			RespondError(c, "gestor não pode atribuir esse papel", http.StatusForbidden)
			return
		}
		user.OrganizationID = caller.OrganizationID
	}

	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		RespondError(c, "Usuário já existe", http.StatusBadRequest)
		return
	}

	user.Password = encodePassword(user.Email, user.Password)
	user.Status = models.USER_STATUS_ATIVO

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}

type updateUserData struct {
	ID    int64   `json:"id"`
	Name  *string `json:"name"`
	Role  *string `json:"role"`
	Cargo *string `json:"cargo"`
}

func updateUserAction(c *gin.Context, caller models.User, data json.RawMessage) {
	db := dbpkg.DBInstance(c)

	var d updateUserData
	if err := json.Unmarshal(data, &d); err != nil || d.ID <= 0 {
		RespondError(c, "Faltando campo id", http.StatusBadRequest)
		return
	}

	var target models.User
	if err := db.First(&target, d.ID).Error; err != nil {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}
	if caller.Role != models.USER_ROLE_SUPER_ADMIN && target.OrganizationID != caller.OrganizationID {
		RespondError(c, "usuário de outra organização", http.StatusForbidden)
		return
	}

	updates := map[string]any{}
	if d.Name != nil && *d.Name != "" {
		updates["name"] = *d.Name
	}
	if d.Cargo != nil {
		updates["cargo"] = *d.Cargo
	}
	if d.Role != nil {
		if !models.IsValidRole(*d.Role) {
			RespondError(c, "role inválido", http.StatusBadRequest)
			return
		}
		if caller.Role != models.USER_ROLE_SUPER_ADMIN {
			RespondError(c, "apenas super_admin altera papéis", http.StatusForbidden)
			return
		}
		updates["role"] = *d.Role
	}
	if len(updates) == 0 {
		RespondError(c, "nada para atualizar", http.StatusBadRequest)
		return
	}

	if err := db.Model(&target).Updates(updates).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	target.Password = ""
	RespondSuccess(c, gin.H{"user": target})
}

type toggleUserData struct {
	ID int64 `json:"id"`
}

func toggleUserStatus(c *gin.Context, caller models.User, data json.RawMessage) {
	db := dbpkg.DBInstance(c)

	var d toggleUserData
	if err := json.Unmarshal(data, &d); err != nil || d.ID <= 0 {
		RespondError(c, "Faltando campo id", http.StatusBadRequest)
		return
	}

	var target models.User
	if err := db.First(&target, d.ID).Error; err != nil {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}
	if caller.Role != models.USER_ROLE_SUPER_ADMIN && target.OrganizationID != caller.OrganizationID {
		RespondError(c, "usuário de outra organização", http.StatusForbidden)
		return
	}
	if target.ID == caller.ID {
		RespondError(c, "não é possível bloquear a si mesmo", http.StatusBadRequest)
		return
	}

	newStatus := models.USER_STATUS_BLOQUEADO
	if target.Status == models.USER_STATUS_BLOQUEADO {
		newStatus = models.USER_STATUS_ATIVO
	}
	if err := db.Model(&target).Update("status", newStatus).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	target.Status = newStatus
	target.Password = ""
	RespondSuccess(c, gin.H{"user": target})
}

func listOrganizations(c *gin.Context, caller models.User) {
	if caller.Role != models.USER_ROLE_SUPER_ADMIN {
		RespondError(c, "apenas super_admin gerencia organizações", http.StatusForbidden)
		return
	}
	db := dbpkg.DBInstance(c)

	var orgs []models.Organization
	if err := db.Order("id asc").Find(&orgs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"organizations": orgs, "total": len(orgs)})
}

func createOrganization(c *gin.Context, caller models.User, data json.RawMessage) {
	if caller.Role != models.USER_ROLE_SUPER_ADMIN {
		RespondError(c, "apenas super_admin gerencia organizações", http.StatusForbidden)
		return
	}
	db := dbpkg.DBInstance(c)

	var org models.Organization
	if err := json.Unmarshal(data, &org); err != nil || org.Name == "" {
		RespondError(c, "Faltando campo name", http.StatusBadRequest)
		return
	}
	org.ID = 0
	org.IsActive = true

	if err := db.Create(&org).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"organization": org})
}

type updateOrganizationData struct {
	ID       int64   `json:"id"`
	Name     *string `json:"name"`
	CNPJ     *string `json:"cnpj"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	IsActive *bool   `json:"is_active"`
}

func updateOrganization(c *gin.Context, caller models.User, data json.RawMessage) {
	if caller.Role != models.USER_ROLE_SUPER_ADMIN {
		RespondError(c, "apenas super_admin gerencia organizações", http.StatusForbidden)
		return
	}
	db := dbpkg.DBInstance(c)

	var d updateOrganizationData
	if err := json.Unmarshal(data, &d); err != nil || d.ID <= 0 {
		RespondError(c, "Faltando campo id", http.StatusBadRequest)
		return
	}

	var org models.Organization
	if err := db.First(&org, d.ID).Error; err != nil {
		RespondError(c, "organização não encontrada", http.StatusNotFound)
		return
	}

	updates := map[string]any{}
	if d.Name != nil && *d.Name != "" {
		updates["name"] = *d.Name
	}
	if d.CNPJ != nil {
		updates["cnpj"] = *d.CNPJ
	}
	if d.City != nil {
		updates["city"] = *d.City
	}
	if d.State != nil {
		updates["state"] = *d.State
	}
	if d.IsActive != nil {
		updates["is_active"] = *d.IsActive
	}
	if len(updates) == 0 {
		RespondError(c, "nada para atualizar", http.StatusBadRequest)
		return
	}

	if err := db.Model(&org).Updates(updates).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"organization": org})
}
