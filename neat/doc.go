// Package neat evolves Continuous-Time Recurrent Neural Networks through
// speciated genetic search: historical-marking innovation numbers align
// genomes for crossover, a compatibility distance drives speciation, and
// per-species population budgets control reproduction.
//
// A minimal run loads configuration, builds a population around a
// Scenario, and repeatedly advances one generation:
//
//	cfg, err := neat.LoadConfig("./configs/xor-config")
//	pop, err := neat.NewPopulation(cfg, Xor{}, ctrnn.ReLU, hook)
//	stats, err := pop.Run()
//
// See package github.com/baldhumanity/neat-ctrnn/ctrnn for the network
// compiler and Euler integrator genomes compile into.
package neat
