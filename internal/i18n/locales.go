package i18n

var translations = map[Language]map[string]string{
	LanguagePT: {
		// Header
		"greeting":             "Olá,",
		"deliveries_today":     "Entregas de Hoje",
		"remaining_deliveries": "entregas restantes",
		"notifications":        "Notificações",

		// Navigation
		"nav_deliveries":  "Entregas",
		"nav_receipt":     "Canhoto",
		"nav_occurrences": "Ocorrências",
		"nav_profile":     "Perfil",

		// List
		"filter_all":          "Todas",
		"filter_pending":      "Pendentes",
		"filter_in_transit":   "Em Trânsito",
		"filter_delivered":    "Entregues",
		"filter_issue":        "Ocorrências",
		"deliveries_count":    "%d entregas",
		"no_deliveries_found": "Nenhuma entrega encontrada",

		// Delivery Card
		"priority":         "Prioritário",
		"items":            "itens",
		"status_pending":   "Pendente",
		"status_transit":   "Em Trânsito",
		"status_delivered": "Entregue",
		"status_issue":     "Ocorrência",
		"status_refused":   "Recusado",

		// Delivery Detail
		"delivery_details":    "Detalhes da Entrega",
		"invoice":             "Nota Fiscal",
		"client":              "Cliente",
		"address":             "Endereço",
		"scheduled_time":      "Horário Agendado",
		"total_items":         "Total de Itens",
		"navigate":            "Navegar",
		"call":                "Ligar",
		"start_route":         "Iniciar Rota",
		"register_receipt":    "Registrar Canhoto",
		"register_occurrence": "Registrar Ocorrência",
		"back":                "Voltar",
		"high_priority_alert": "Entrega prioritária",

		// Receipt Capture
		"receipt_capture":        "Captura de Canhoto",
		"delivery_summary":       "Resumo da Entrega",
		"receiver_data":          "Dados do Recebedor",
		"receiver_name":          "Nome do Recebedor",
		"receiver_document":      "Documento (CPF/RG)",
		"delivery_notes":         "Observações da Entrega",
		"notes_placeholder":      "Adicione observações sobre a entrega...",
		"receipt_photo":          "Foto do Canhoto",
		"take_photo":             "Tirar Foto",
		"retake_photo":           "Tirar Novamente",
		"select_gallery":         "Selecionar da Galeria",
		"save_receipt":           "Salvar Canhoto",
		"camera_permission":      "Permissão de câmera necessária",
		"camera_permission_desc": `Clique em "Tirar Foto" para solicitar acesso à câmera`,
		"loading_camera":         "Carregando câmera...",
		"camera_ready":           "Câmera pronta",
		"capture":                "Capturar",
		"cancel":                 "Cancelar",

		// Occurrence Form
		"occurrence_report":   "Registro de Ocorrência",
		"occurrence_type":     "Tipo de Ocorrência",
		"select_type":         "Selecione o tipo",
		"damaged_product":     "Produto Danificado",
		"refused_receipt":     "Recusa de Recebimento",
		"partial_delivery":    "Entrega Parcial",
		"reschedule":          "Reagendamento",
		"absent_customer":     "Cliente Ausente",
		"wrong_address":       "Endereço Incorreto",
		"closed_location":     "Local Fechado",
		"other":               "Outro",
		"description":         "Descrição",
		"describe_occurrence": "Descreva detalhadamente a ocorrência...",
		"occurrence_photo":    "Foto da Ocorrência",
		"optional":            "opcional",
		"submit_occurrence":   "Enviar Ocorrência",

		// Toasts
		"photo_required":             "Foto obrigatória",
		"photo_required_desc":        "Tire uma foto do canhoto assinado",
		"name_required":              "Nome obrigatório",
		"name_required_desc":         "Informe o nome de quem recebeu",
		"receipt_saved":              "Canhoto registrado!",
		"receipt_saved_desc":         "Entrega %s confirmada com sucesso",
		"type_required":              "Selecione o tipo",
		"type_required_desc":         "Escolha o tipo de ocorrência",
		"description_required":       "Descrição obrigatória",
		"description_required_desc":  "Descreva o que aconteceu",
		"occurrence_saved":           "Ocorrência registrada!",
		"occurrence_saved_desc":      "O supervisor será notificado",
		"camera_denied":              "Câmera indisponível",
		"camera_denied_desc":         "Permita o acesso à câmera ou selecione uma foto da galeria",
		"submit_failed":              "Falha no envio",
		"submit_failed_desc":         "Não foi possível enviar. Tente novamente",
		"no_pending_deliveries":      "Nenhuma entrega pendente",
		"no_pending_deliveries_desc": "Todas as entregas de hoje foram concluídas",

		// Accessibility
		"accessibility": "Acessibilidade",
		"font_size":     "Tamanho da Fonte",
		"small":         "Pequeno",
		"medium":        "Médio",
		"large":         "Grande",
		"high_contrast": "Alto Contraste",
		"language":      "Idioma",
		"close":         "Fechar",
	},
	LanguageEN: {
		// Header
		"greeting":             "Hello,",
		"deliveries_today":     "Today's Deliveries",
		"remaining_deliveries": "remaining deliveries",
		"notifications":        "Notifications",

		// Navigation
		"nav_deliveries":  "Deliveries",
		"nav_receipt":     "Receipt",
		"nav_occurrences": "Issues",
		"nav_profile":     "Profile",

		// List
		"filter_all":          "All",
		"filter_pending":      "Pending",
		"filter_in_transit":   "In Transit",
		"filter_delivered":    "Delivered",
		"filter_issue":        "Issues",
		"deliveries_count":    "%d deliveries",
		"no_deliveries_found": "No deliveries found",

		// Delivery Card
		"priority":         "Priority",
		"items":            "items",
		"status_pending":   "Pending",
		"status_transit":   "In Transit",
		"status_delivered": "Delivered",
		"status_issue":     "Issue",
		"status_refused":   "Refused",

		// Delivery Detail
		"delivery_details":    "Delivery Details",
		"invoice":             "Invoice",
		"client":              "Client",
		"address":             "Address",
		"scheduled_time":      "Scheduled Time",
		"total_items":         "Total Items",
		"navigate":            "Navigate",
		"call":                "Call",
		"start_route":         "Start Route",
		"register_receipt":    "Register Receipt",
		"register_occurrence": "Report Issue",
		"back":                "Back",
		"high_priority_alert": "Priority delivery",

		// Receipt Capture
		"receipt_capture":        "Receipt Capture",
		"delivery_summary":       "Delivery Summary",
		"receiver_data":          "Receiver Data",
		"receiver_name":          "Receiver Name",
		"receiver_document":      "Document (ID)",
		"delivery_notes":         "Delivery Notes",
		"notes_placeholder":      "Add delivery notes...",
		"receipt_photo":          "Receipt Photo",
		"take_photo":             "Take Photo",
		"retake_photo":           "Retake Photo",
		"select_gallery":         "Select from Gallery",
		"save_receipt":           "Save Receipt",
		"camera_permission":      "Camera permission required",
		"camera_permission_desc": `Click "Take Photo" to request camera access`,
		"loading_camera":         "Loading camera...",
		"camera_ready":           "Camera ready",
		"capture":                "Capture",
		"cancel":                 "Cancel",

		// Occurrence Form
		"occurrence_report":   "Issue Report",
		"occurrence_type":     "Issue Type",
		"select_type":         "Select type",
		"damaged_product":     "Damaged Product",
		"refused_receipt":     "Receipt Refused",
		"partial_delivery":    "Partial Delivery",
		"reschedule":          "Reschedule",
		"absent_customer":     "Customer Absent",
		"wrong_address":       "Wrong Address",
		"closed_location":     "Location Closed",
		"other":               "Other",
		"description":         "Description",
		"describe_occurrence": "Describe the issue in detail...",
		"occurrence_photo":    "Issue Photo",
		"optional":            "optional",
		"submit_occurrence":   "Submit Issue",

		// Toasts
		"photo_required":             "Photo required",
		"photo_required_desc":        "Take a photo of the signed receipt",
		"name_required":              "Name required",
		"name_required_desc":         "Enter the name of the person who received it",
		"receipt_saved":              "Receipt registered!",
		"receipt_saved_desc":         "Delivery %s confirmed successfully",
		"type_required":              "Select the type",
		"type_required_desc":         "Choose the issue type",
		"description_required":       "Description required",
		"description_required_desc":  "Describe what happened",
		"occurrence_saved":           "Issue registered!",
		"occurrence_saved_desc":      "The supervisor will be notified",
		"camera_denied":              "Camera unavailable",
		"camera_denied_desc":         "Allow camera access or pick a photo from the gallery",
		"submit_failed":              "Submission failed",
		"submit_failed_desc":         "Could not send. Please try again",
		"no_pending_deliveries":      "No pending deliveries",
		"no_pending_deliveries_desc": "All of today's deliveries are done",

		// Accessibility
		"accessibility": "Accessibility",
		"font_size":     "Font Size",
		"small":         "Small",
		"medium":        "Medium",
		"large":         "Large",
		"high_contrast": "High Contrast",
		"language":      "Language",
		"close":         "Close",
	},
	LanguageES: {
		// Header
		"greeting":             "Hola,",
		"deliveries_today":     "Entregas de Hoy",
		"remaining_deliveries": "entregas restantes",
		"notifications":        "Notificaciones",

		// Navigation
		"nav_deliveries":  "Entregas",
		"nav_receipt":     "Recibo",
		"nav_occurrences": "Incidencias",
		"nav_profile":     "Perfil",

		// List
		"filter_all":          "Todas",
		"filter_pending":      "Pendientes",
		"filter_in_transit":   "En Tránsito",
		"filter_delivered":    "Entregadas",
		"filter_issue":        "Incidencias",
		"deliveries_count":    "%d entregas",
		"no_deliveries_found": "No se encontraron entregas",

		// Delivery Card
		"priority":         "Prioritario",
		"items":            "artículos",
		"status_pending":   "Pendiente",
		"status_transit":   "En Tránsito",
		"status_delivered": "Entregado",
		"status_issue":     "Incidencia",
		"status_refused":   "Rechazado",

		// Delivery Detail
		"delivery_details":    "Detalles de Entrega",
		"invoice":             "Factura",
		"client":              "Cliente",
		"address":             "Dirección",
		"scheduled_time":      "Hora Programada",
		"total_items":         "Total de Artículos",
		"navigate":            "Navegar",
		"call":                "Llamar",
		"start_route":         "Iniciar Ruta",
		"register_receipt":    "Registrar Recibo",
		"register_occurrence": "Registrar Incidencia",
		"back":                "Volver",
		"high_priority_alert": "Entrega prioritaria",

		// Receipt Capture
		"receipt_capture":        "Captura de Recibo",
		"delivery_summary":       "Resumen de Entrega",
		"receiver_data":          "Datos del Receptor",
		"receiver_name":          "Nombre del Receptor",
		"receiver_document":      "Documento (DNI)",
		"delivery_notes":         "Notas de Entrega",
		"notes_placeholder":      "Agregar notas sobre la entrega...",
		"receipt_photo":          "Foto del Recibo",
		"take_photo":             "Tomar Foto",
		"retake_photo":           "Tomar de Nuevo",
		"select_gallery":         "Seleccionar de Galería",
		"save_receipt":           "Guardar Recibo",
		"camera_permission":      "Permiso de cámara requerido",
		"camera_permission_desc": `Haga clic en "Tomar Foto" para solicitar acceso`,
		"loading_camera":         "Cargando cámara...",
		"camera_ready":           "Cámara lista",
		"capture":                "Capturar",
		"cancel":                 "Cancelar",

		// Occurrence Form
		"occurrence_report":   "Registro de Incidencia",
		"occurrence_type":     "Tipo de Incidencia",
		"select_type":         "Seleccione tipo",
		"damaged_product":     "Producto Dañado",
		"refused_receipt":     "Rechazo de Recepción",
		"partial_delivery":    "Entrega Parcial",
		"reschedule":          "Reprogramación",
		"absent_customer":     "Cliente Ausente",
		"wrong_address":       "Dirección Incorrecta",
		"closed_location":     "Local Cerrado",
		"other":               "Otro",
		"description":         "Descripción",
		"describe_occurrence": "Describa detalladamente la incidencia...",
		"occurrence_photo":    "Foto de Incidencia",
		"optional":            "opcional",
		"submit_occurrence":   "Enviar Incidencia",

		// Toasts
		"photo_required":             "Foto obligatoria",
		"photo_required_desc":        "Tome una foto del recibo firmado",
		"name_required":              "Nombre obligatorio",
		"name_required_desc":         "Indique el nombre de quien recibió",
		"receipt_saved":              "¡Recibo registrado!",
		"receipt_saved_desc":         "Entrega %s confirmada con éxito",
		"type_required":              "Seleccione el tipo",
		"type_required_desc":         "Elija el tipo de incidencia",
		"description_required":       "Descripción obligatoria",
		"description_required_desc":  "Describa lo que pasó",
		"occurrence_saved":           "¡Incidencia registrada!",
		"occurrence_saved_desc":      "El supervisor será notificado",
		"camera_denied":              "Cámara no disponible",
		"camera_denied_desc":         "Permita el acceso a la cámara o elija una foto de la galería",
		"submit_failed":              "Error de envío",
		"submit_failed_desc":         "No se pudo enviar. Inténtelo de nuevo",
		"no_pending_deliveries":      "No hay entregas pendientes",
		"no_pending_deliveries_desc": "Todas las entregas de hoy están completas",

		// Accessibility
		"accessibility": "Accesibilidad",
		"font_size":     "Tamaño de Fuente",
		"small":         "Pequeño",
		"medium":        "Mediano",
		"large":         "Grande",
		"high_contrast": "Alto Contraste",
		"language":      "Idioma",
		"close":         "Cerrar",
	},
}
