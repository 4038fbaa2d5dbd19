package models

// All lists every table, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Admin{},
		&AdminSession{},
		&PasswordResetToken{},
		&Profile{},
		&About{},
		&Contact{},
		&Project{},
		&ProjectImage{},
		&Work{},
		&WorkImage{},
		&AutoReplyTemplate{},
		&MessageSettings{},
		&Conversation{},
		&Message{},
		&Attachment{},
	}
}
