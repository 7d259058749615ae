package api

import (
	"expo/database"
	"expo/repository"
)

func expenseRepo() *repository.ExpenseRepository {
	return repository.NewExpenseRepository(database.DB)
}

func categoryRepo() *repository.CategoryRepository {
	return repository.NewCategoryRepository(database.DB)
}

func userRepo() *repository.UserRepository {
	return repository.NewUserRepository(database.DB)
}
