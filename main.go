package main

import (
	"flag"
	"log"
	"strings"

	"budgetia/config"
	"budgetia/database"
	"budgetia/middleware"
	"budgetia/router"
)

// @title Budgetia API
// @version 1.0
// @description Suivi de budget personnel: catégories avec budgets mensuels, dépenses avec alertes, exports CSV/XLSX/PDF et scan de tickets par OCR.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "chemin d'un fichier de configuration externe (optionnel)")
	flag.StringVar(&configFile, "c", "", "fichier de configuration (raccourci)")
	flag.StringVar(&port, "port", "", "port d'écoute, ex: 8080 ou :8080")
	flag.StringVar(&port, "p", "", "port d'écoute (raccourci)")
	flag.BoolVar(&showVersion, "version", false, "affiche la version")
	flag.BoolVar(&showVersion, "v", false, "affiche la version (raccourci)")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("Budgetia v1.0.0")
		return
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("chargement de la configuration: %v", err)
	}

	// the command line wins over the config file
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("port imposé par la ligne de commande: %s", port)
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		log.Fatalf("initialisation de la base de données: %v", err)
	}

	middleware.InitJWT(cfg)

	r := router.SetupRouter(cfg)

	log.Printf("==========================================")
	log.Printf("  Budgetia démarré")
	log.Printf("==========================================")
	log.Printf("  Application: http://localhost%s/", cfg.Server.Port)
	log.Printf("  Swagger:     http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("démarrage du serveur: %v", err)
	}
}
