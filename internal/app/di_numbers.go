package app

import (
	"fmt"

	numbersHTTP "github.com/allisson/numbers/internal/numbers/http"
	numbersRepository "github.com/allisson/numbers/internal/numbers/repository"
	numbersUseCase "github.com/allisson/numbers/internal/numbers/usecase"
)

// NumberRepository returns the number repository based on database driver.
func (c *Container) NumberRepository() (numbersUseCase.NumberRepository, error) {
	c.numberRepoInit.Do(func() {
		numberRepo, err := c.initNumberRepository()
		if err != nil {
			c.initErrors["numberRepo"] = err
			return
		}
		c.numberRepo = numberRepo
	})
	if storedErr, exists := c.initErrors["numberRepo"]; exists {
		return nil, storedErr
	}
	return c.numberRepo, nil
}

// NumberUseCase returns the number use case.
func (c *Container) NumberUseCase() (numbersUseCase.NumberUseCase, error) {
	c.numberUseCaseInit.Do(func() {
		useCase, err := c.initNumberUseCase()
		if err != nil {
			c.initErrors["numberUseCase"] = err
			return
		}
		c.numberUseCase = useCase
	})
	if storedErr, exists := c.initErrors["numberUseCase"]; exists {
		return nil, storedErr
	}
	return c.numberUseCase, nil
}

// NumberHandler returns the HTTP handler for number record operations.
func (c *Container) NumberHandler() (*numbersHTTP.NumberHandler, error) {
	c.numberHandlerInit.Do(func() {
		handler, err := c.initNumberHandler()
		if err != nil {
			c.initErrors["numberHandler"] = err
			return
		}
		c.numberHandler = handler
	})
	if storedErr, exists := c.initErrors["numberHandler"]; exists {
		return nil, storedErr
	}
	return c.numberHandler, nil
}

// initNumberRepository creates the number repository based on the database driver.
func (c *Container) initNumberRepository() (numbersUseCase.NumberRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for number repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return numbersRepository.NewPostgreSQLNumberRepository(db), nil
	case "mysql":
		return numbersRepository.NewMySQLNumberRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initNumberUseCase creates the number use case with all its dependencies.
func (c *Container) initNumberUseCase() (numbersUseCase.NumberUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for number use case: %w", err)
	}

	numberRepo, err := c.NumberRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get number repository for number use case: %w", err)
	}

	baseUseCase := numbersUseCase.NewNumberUseCase(txManager, numberRepo)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for number use case: %w", err)
		}
		return numbersUseCase.NewNumberUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initNumberHandler creates the number HTTP handler with all its dependencies.
func (c *Container) initNumberHandler() (*numbersHTTP.NumberHandler, error) {
	useCase, err := c.NumberUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get number use case for number handler: %w", err)
	}

	return numbersHTTP.NewNumberHandler(useCase, c.Logger()), nil
}
