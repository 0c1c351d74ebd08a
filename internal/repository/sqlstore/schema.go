package sqlstore

const (
	createUsersTableSQLite = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`
	createUsersTablePostgres = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`
	createProjectsTableSQLite = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`
	createProjectsTablePostgres = `
CREATE TABLE IF NOT EXISTS projects (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`
	createProjectsUsersTableSQLite = `
CREATE TABLE IF NOT EXISTS projects_users (
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	PRIMARY KEY (project_id, user_id)
);
`
	createProjectsUsersTablePostgres = `
CREATE TABLE IF NOT EXISTS projects_users (
	project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	PRIMARY KEY (project_id, user_id)
);
`
	createProjectsUsersUserIndex = `CREATE INDEX IF NOT EXISTS idx_projects_users_user_id ON projects_users(user_id)`
)

func (d Dialect) usersSchema() []string {
	if d == DialectPostgres {
		return []string{createUsersTablePostgres}
	}
	return []string{createUsersTableSQLite}
}

func (d Dialect) projectsSchema() []string {
	if d == DialectPostgres {
		return []string{createProjectsTablePostgres, createProjectsUsersTablePostgres, createProjectsUsersUserIndex}
	}
	return []string{createProjectsTableSQLite, createProjectsUsersTableSQLite, createProjectsUsersUserIndex}
}
